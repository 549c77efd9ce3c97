package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"cyberdesk-backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheetName = "Customers"

var exportHeaders = []interface{}{"ID", "Name", "Phone", "Email", "Place"}

var exportColumnWidths = map[string]float64{"A": 8, "B": 25, "C": 16, "D": 30, "E": 25}

// ExportService keeps an xlsx copy of the customer table on disk. The file
// is a derived view and is never read back.
type ExportService struct {
	db   *gorm.DB
	path string
	mu   sync.Mutex
}

func NewExportService(db *gorm.DB, path string) *ExportService {
	return &ExportService{db: db, path: path}
}

func (s *ExportService) Path() string {
	return s.path
}

// Rebuild rewrites the whole workbook from the current customers.
func (s *ExportService) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&customers).Error; err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	f, err := BuildCustomerWorkbook(customers)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace export: %w", err)
	}
	return nil
}

// RebuildQuietly rebuilds and only logs failures. The customer change that
// triggered it has already been committed.
func (s *ExportService) RebuildQuietly(ctx context.Context) {
	if err := s.Rebuild(ctx); err != nil {
		log.Printf("[EXPORT] spreadsheet rebuild failed: %v", err)
	}
}

// Exists reports whether an export file is present.
func (s *ExportService) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// BuildCustomerWorkbook lays out one row per customer under a header row.
func BuildCustomerWorkbook(customers []models.Customer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range customers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{c.ID, c.Name, c.Phone, c.Email, c.Place}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write customer %d: %w", c.ID, err)
		}
	}

	for col, width := range exportColumnWidths {
		if err := f.SetColWidth(exportSheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	return f, nil
}
