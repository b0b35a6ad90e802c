package models

import "time"

// Post is a community report ("problema").
type Post struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	Content     string    `gorm:"type:text;not null"`
	ContactInfo string    `gorm:"size:100;not null"`
	DatePosted  time.Time `gorm:"not null;index"`

	// owner, fixed at creation
	UserID uint `gorm:"not null;index"`
	Author User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	UpdatedAt time.Time
}
