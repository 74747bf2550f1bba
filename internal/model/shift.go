package model

// Shift is read-only reference data: a named working window with wall-clock
// start and end times.
type Shift struct {
	ID        string `gorm:"primaryKey;size:36"`
	Position  int    `gorm:"not null;index"`
	Name      string `gorm:"size:128;not null"`
	StartTime string `gorm:"size:8;not null"`
	EndTime   string `gorm:"size:8;not null"`
}
