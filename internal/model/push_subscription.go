package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Docks []DockSubscription `gorm:"foreignKey:Endpoint;references:Endpoint;constraint:OnDelete:CASCADE"`
}

// DockSubscription links a subscription to one dock it watches for
// availability.
type DockSubscription struct {
	Endpoint string `gorm:"primaryKey"`
	DockID   string `gorm:"primaryKey;size:8"`
}
