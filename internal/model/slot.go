package model

import "time"

// Slot is one named value in the key-value store.
type Slot struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
