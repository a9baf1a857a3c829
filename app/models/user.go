package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Fullname  string `gorm:"size:128"`
	Email     string `gorm:"uniqueIndex;size:191;not null"`
	Password  string `gorm:"size:255;not null"`
	Photo     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
