package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:20;not null"`
	FullName     string `gorm:"size:120"`
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string `gorm:"not null"`

	RoleID uint `gorm:"not null"`
	Role   Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the loaded role is admin. Role must be preloaded.
func (u User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

// UserSummary is a dashboard row: the user plus the number of posts they own.
type UserSummary struct {
	User      User
	PostCount int64
}
