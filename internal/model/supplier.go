package model

import "time"

// Supplier is an independent reference entity; deleting one never cascades
// to vehicles.
type Supplier struct {
	ID        string `gorm:"primaryKey;size:36"`
	Position  int    `gorm:"not null;index"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
