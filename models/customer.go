package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null"`
	Phone string `gorm:"size:20;index"`
	Email string `gorm:"size:100"`
	Place string `gorm:"size:100"`

	// NameKey is Name folded by SearchKey. SQLite's LOWER only folds ASCII,
	// so searches match against this column instead.
	NameKey string `gorm:"size:100;index"`

	Activities []Activity `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Documents  []Document `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Bills      []Bill     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchKey folds s for case-insensitive matching.
func SearchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Customer) BeforeSave(tx *gorm.DB) error {
	c.NameKey = SearchKey(c.Name)
	return nil
}
