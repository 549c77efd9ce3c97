package services

import (
	"context"
	"fmt"
	"strings"

	"cyberdesk-backend/models"

	"gorm.io/gorm"
)

const maxActivityLength = 300

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Create adds a history note to an existing customer. The timestamp is
// assigned by the database layer.
func (s *ActivityService) Create(ctx context.Context, customerID uint, description string) (*models.Activity, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len([]rune(description)) > maxActivityLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrValidation, maxActivityLength)
	}

	db := s.db.WithContext(ctx)
	if _, err := requireCustomer(db, customerID); err != nil {
		return nil, err
	}

	activity := models.Activity{
		CustomerID:  customerID,
		Description: description,
	}
	if err := db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &activity, nil
}

// ListByCustomer returns the customer's history, most recent first.
func (s *ActivityService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
