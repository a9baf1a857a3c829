package models

import "time"

const (
	PriorityNormal = "NORMAL"
	PriorityUrgent = "URGENT"

	StatusActive = "1"
)

// Publication is owned by exactly one user; UserID never changes after creation.
type Publication struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:128"`
	Description string `gorm:"size:512"`
	Priority    string `gorm:"size:16;default:NORMAL"`
	Status      string `gorm:"size:8;default:1"`
	UserID      uint   `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
