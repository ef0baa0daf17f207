package models

import "time"

// AuditLog records mutating requests. Path and action are stored encrypted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	PathEnc   string    `gorm:"size:1024"`
	Method    string    `gorm:"size:16"`
	ActionEnc string    `gorm:"size:2048"`
	Status    int       `gorm:"not null"`
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	RequestID string    `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
