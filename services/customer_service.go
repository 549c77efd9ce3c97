package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cyberdesk-backend/models"
	"cyberdesk-backend/storage"

	"gorm.io/gorm"
)

// CustomerInput is the editable part of a customer record.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
	Place string
}

func (in CustomerInput) normalized() CustomerInput {
	return CustomerInput{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
		Place: strings.TrimSpace(in.Place),
	}
}

// MirrorRebuilder is told to refresh derived views after customer changes.
type MirrorRebuilder interface {
	RebuildQuietly(ctx context.Context)
}

type CustomerService struct {
	db     *gorm.DB
	files  *storage.FileStore
	mirror MirrorRebuilder
}

// NewCustomerService builds the service. files and mirror may be nil.
func NewCustomerService(db *gorm.DB, files *storage.FileStore, mirror MirrorRebuilder) *CustomerService {
	return &CustomerService{db: db, files: files, mirror: mirror}
}

func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	input = input.normalized()
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	customer := models.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		Place: input.Place,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.rebuildMirror(ctx)
	return &customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return requireCustomer(s.db.WithContext(ctx), id)
}

// List returns all customers, or when query is non-empty only those whose
// name or phone contains it, ignoring case.
func (s *CustomerService) List(ctx context.Context, query string) ([]models.Customer, error) {
	q := s.db.WithContext(ctx).Order("id ASC")

	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + escapeLike(models.SearchKey(query)) + "%"
		q = q.Where("(name_key LIKE ? ESCAPE '\\' OR LOWER(phone) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, input CustomerInput) (*models.Customer, error) {
	input = input.normalized()
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Place = input.Place

	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}

	s.rebuildMirror(ctx)
	return customer, nil
}

// Delete removes the customer together with its bills, activities and
// documents in one transaction, then drops the customer's upload folder.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := requireCustomer(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("customer_id = ?", id).Delete(&models.Bill{}).Error; err != nil {
			return fmt.Errorf("delete bills of customer %d: %w", id, err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return fmt.Errorf("delete activities of customer %d: %w", id, err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("delete documents of customer %d: %w", id, err)
		}
		if err := tx.Delete(customer).Error; err != nil {
			return fmt.Errorf("delete customer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.files != nil {
		if err := s.files.RemoveCustomerArea(id); err != nil {
			log.Printf("[STORE] customer %d deleted but upload folder was not removed: %v", id, err)
		}
	}

	s.rebuildMirror(ctx)
	return nil
}

func (s *CustomerService) rebuildMirror(ctx context.Context) {
	if s.mirror != nil {
		s.mirror.RebuildQuietly(ctx)
	}
}

// requireCustomer checks that a customer row exists inside db (or a tx).
func requireCustomer(db *gorm.DB, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &customer, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
