package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Customer{},
		&Activity{},
		&Document{},
		&Bill{},
		&InvoiceSequence{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return backfillNameKeys(db)
}

// backfillNameKeys fills the search column for rows written before it existed.
func backfillNameKeys(db *gorm.DB) error {
	var customers []Customer
	if err := db.Where("name_key = '' OR name_key IS NULL").Find(&customers).Error; err != nil {
		return fmt.Errorf("load customers without search key: %w", err)
	}
	for _, c := range customers {
		if err := db.Model(&Customer{}).Where("id = ?", c.ID).
			UpdateColumn("name_key", SearchKey(c.Name)).Error; err != nil {
			return fmt.Errorf("backfill search key for customer %d: %w", c.ID, err)
		}
	}
	return nil
}
