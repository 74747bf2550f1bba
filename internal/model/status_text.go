package model

// StatusText is one per-status display label override. Presentation data
// only; the state machine never reads it.
type StatusText struct {
	Status string `gorm:"primaryKey;size:16"`
	Label  string `gorm:"size:64;not null"`
}

// MaintenanceDock marks a dock as out of service.
type MaintenanceDock struct {
	DockID string `gorm:"primaryKey;size:8"`
}
