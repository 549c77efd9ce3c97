// Package storage keeps uploaded customer documents on the local
// filesystem, one subfolder per customer.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"cyberdesk-backend/utils"
)

var (
	// ErrNotFound indicates the requested file does not exist.
	ErrNotFound = errors.New("storage: file not found")

	// ErrInvalidName indicates the supplied name sanitizes to nothing.
	ErrInvalidName = errors.New("storage: invalid file name")
)

type FileStore struct {
	basePath string
}

// NewFileStore resolves basePath and creates it if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path required")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("create base path: %w", err)
	}

	return &FileStore{basePath: absPath}, nil
}

func (s *FileStore) BasePath() string {
	return s.basePath
}

// Save writes r under the customer's folder using the sanitized form of
// suggestedName and returns that name. An existing file with the same name
// is replaced.
func (s *FileStore) Save(customerID uint, r io.Reader, suggestedName string) (string, error) {
	name := utils.SecureFilename(suggestedName)
	if name == "" {
		return "", ErrInvalidName
	}

	dir := s.customerDir(customerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create customer dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	return name, nil
}

// Open returns the stored file for reading. The caller closes it.
func (s *FileStore) Open(customerID uint, name string) (*os.File, error) {
	path, err := s.path(customerID, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// Exists reports whether name is stored for the customer.
func (s *FileStore) Exists(customerID uint, name string) (bool, error) {
	path, err := s.path(customerID, name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Remove deletes a single stored file. Missing files are not an error.
func (s *FileStore) Remove(customerID uint, name string) error {
	path, err := s.path(customerID, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// RemoveCustomerArea deletes the customer's folder and everything in it.
func (s *FileStore) RemoveCustomerArea(customerID uint) error {
	if err := os.RemoveAll(s.customerDir(customerID)); err != nil {
		return fmt.Errorf("remove customer dir: %w", err)
	}
	return nil
}

func (s *FileStore) customerDir(customerID uint) string {
	return filepath.Join(s.basePath, strconv.FormatUint(uint64(customerID), 10))
}

// path only accepts names that are already in sanitized form, which keeps
// every lookup inside the customer's folder.
func (s *FileStore) path(customerID uint, name string) (string, error) {
	if name == "" || utils.SecureFilename(name) != name {
		return "", ErrInvalidName
	}
	return filepath.Join(s.customerDir(customerID), name), nil
}
