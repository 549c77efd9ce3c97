package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"cyberdesk-backend/models"
	"cyberdesk-backend/storage"
	"cyberdesk-backend/utils"

	"gorm.io/gorm"
)

type DocumentService struct {
	db    *gorm.DB
	files *storage.FileStore
}

func NewDocumentService(db *gorm.DB, files *storage.FileStore) *DocumentService {
	return &DocumentService{db: db, files: files}
}

// Upload stores the file under the customer's folder and records it.
func (s *DocumentService) Upload(ctx context.Context, customerID uint, r io.Reader, filename string) (*models.Document, error) {
	db := s.db.WithContext(ctx)
	if _, err := requireCustomer(db, customerID); err != nil {
		return nil, err
	}

	if name := utils.SecureFilename(filename); name != "" {
		if exists, err := s.files.Exists(customerID, name); err == nil && exists {
			log.Printf("[STORE] upload replaces existing file %d/%s", customerID, name)
		}
	}

	stored, err := s.files.Save(customerID, r, filename)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, fmt.Errorf("%w: file name %q is not usable", ErrValidation, filename)
		}
		return nil, fmt.Errorf("store document: %w", err)
	}

	doc := models.Document{
		CustomerID: customerID,
		Filename:   stored,
	}
	if err := db.Create(&doc).Error; err != nil {
		// Another document row may already point at a file of this name.
		if !s.referenced(ctx, customerID, stored) {
			if rmErr := s.files.Remove(customerID, stored); rmErr != nil {
				log.Printf("[STORE] could not remove orphaned upload %d/%s: %v", customerID, stored, rmErr)
			}
		}
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return &doc, nil
}

// Open returns the document record and its file. The caller closes the file.
func (s *DocumentService) Open(ctx context.Context, id uint) (*models.Document, *os.File, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.files.Open(doc.CustomerID, doc.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return doc, f, nil
}

func (s *DocumentService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentService) referenced(ctx context.Context, customerID uint, filename string) bool {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Document{}).
		Where("customer_id = ? AND filename = ?", customerID, filename).
		Count(&n).Error
	return err != nil || n > 0
}
