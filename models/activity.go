package models

import (
	"cyberdesk-backend/utils"
	"time"
)

// Activity is a history note on a customer's profile.
type Activity struct {
	ID          uint   `gorm:"primaryKey"`
	CustomerID  uint   `gorm:"index;not null"`
	Description string `gorm:"size:300;not null"`
	CreatedAt   time.Time
}

// Date is the timestamp as shown on the profile page.
func (a Activity) Date() string {
	return utils.FormatDisplayDate(a.CreatedAt)
}
