package models

import "time"

const (
	AuditEntityUser = "user"
	AuditEntityPost = "post"

	AuditActionRoleChange = "role_change"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// actor; nulled when the actor account is removed
	UserID    *uint
	User      *User  `gorm:"constraint:OnDelete:SET NULL"`
	ActorName string `gorm:"size:20;not null"`

	Entity   string `gorm:"size:50;not null"` // "user", "post"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "role_change", "update", "delete"
	Details  string `gorm:"type:text"`
}
