package models

import (
	"cyberdesk-backend/utils"
	"strings"
	"time"
)

type Bill struct {
	ID            uint `gorm:"primaryKey"`
	InvoiceNumber int  `gorm:"uniqueIndex;not null"`
	CustomerID    uint `gorm:"index;not null"`

	// Items holds one "name: qty x price = total" line per billed item.
	Items    string `gorm:"type:text"`
	Subtotal int    `gorm:"not null"`
	Discount int    `gorm:"not null;default:0"`
	Total    int    `gorm:"not null"`

	CreatedAt time.Time
}

func (b Bill) Date() string {
	return utils.FormatDisplayDate(b.CreatedAt)
}

// ItemLines splits Items for the print view.
func (b Bill) ItemLines() []string {
	if b.Items == "" {
		return nil
	}
	return strings.Split(b.Items, "\n")
}

// InvoiceSequence persists the highest invoice number ever issued so that
// numbers stay unique after the bills holding them are deleted.
type InvoiceSequence struct {
	Name      string `gorm:"primaryKey;size:32"`
	LastValue int    `gorm:"not null;default:0"`
}
