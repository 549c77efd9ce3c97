package models

import "time"

// Document records an uploaded file. Filename is the sanitized name the
// file store wrote under the customer's folder.
type Document struct {
	ID         uint   `gorm:"primaryKey"`
	CustomerID uint   `gorm:"index;not null"`
	Filename   string `gorm:"size:200;not null"`
	CreatedAt  time.Time
}
