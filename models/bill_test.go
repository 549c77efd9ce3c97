package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBill_ItemLines(t *testing.T) {
	assert.Nil(t, Bill{}.ItemLines())

	b := Bill{Items: "B/W Print: 10 x 2 = 20\nScan: 1 x 5 = 5"}
	assert.Equal(t, []string{"B/W Print: 10 x 2 = 20", "Scan: 1 x 5 = 5"}, b.ItemLines())
}

func TestBill_Date(t *testing.T) {
	b := Bill{CreatedAt: time.Date(2025, time.January, 2, 18, 5, 0, 0, time.Local)}
	assert.Equal(t, "02-01-2025 06:05 PM", b.Date())
	assert.Equal(t, "", Bill{}.Date())
}
