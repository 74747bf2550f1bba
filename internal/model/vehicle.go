package model

import "time"

// Vehicle is the persisted form of a yard vehicle. Position preserves the
// registry's collection order (newest first) across restarts.
type Vehicle struct {
	ID                    string `gorm:"primaryKey;size:36"`
	Position              int    `gorm:"not null;index"`
	RegistrationNumber    string `gorm:"size:64;not null"`
	SupplierID            string `gorm:"size:36;index"`
	ASN                   string `gorm:"size:64"`
	Status                string `gorm:"size:16;not null;index"`
	Arrival               int64  `gorm:"not null"`
	CalledIn              *int64
	UnloadingStart        *int64
	UnloadingEnd          *int64
	Departed              *int64
	AssignedDock          string `gorm:"size:8"`
	DriverName            string `gorm:"size:128"`
	LoadmenCount          int
	CleaningCrewAvailable bool
	DelayRemarks          string `gorm:"size:512"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
