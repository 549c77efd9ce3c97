package services

import (
	"context"
	"fmt"
	"time"

	"cyberdesk-backend/models"
	"cyberdesk-backend/utils"

	"gorm.io/gorm"
)

type DashboardOverview struct {
	TotalCustomers int64
	TotalBills     int64
	BillsToday     int64
	RevenueToday   int
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Overview summarizes the shop as of now.
func (s *DashboardService) Overview(ctx context.Context, now time.Time) (*DashboardOverview, error) {
	db := s.db.WithContext(ctx)
	var overview DashboardOverview

	if err := db.Model(&models.Customer{}).Count(&overview.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := db.Model(&models.Bill{}).Count(&overview.TotalBills).Error; err != nil {
		return nil, fmt.Errorf("count bills: %w", err)
	}

	today := db.Model(&models.Bill{}).Where("created_at >= ?", utils.BeginningOfDay(now))
	if err := today.Count(&overview.BillsToday).Error; err != nil {
		return nil, fmt.Errorf("count today's bills: %w", err)
	}

	if err := db.Model(&models.Bill{}).
		Where("created_at >= ?", utils.BeginningOfDay(now)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&overview.RevenueToday).Error; err != nil {
		return nil, fmt.Errorf("sum today's revenue: %w", err)
	}

	return &overview, nil
}
