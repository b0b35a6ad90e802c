package models

// RoleName is the closed set of privilege levels a user can hold.
type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleCitizen RoleName = "citizen"
)

// DefaultRole is assigned at registration.
const DefaultRole = RoleCitizen

// AllRoles lists every valid role, in seeding order.
var AllRoles = []RoleName{RoleAdmin, RoleCitizen}

func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleCitizen:
		return true
	}
	return false
}

// Toggled returns the other member of the admin/citizen pair.
func (r RoleName) Toggled() RoleName {
	if r == RoleAdmin {
		return RoleCitizen
	}
	return RoleAdmin
}

// Label is the text shown in templates and flash messages.
func (r RoleName) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleCitizen:
		return "Ciudadano"
	default:
		return string(r)
	}
}

type Role struct {
	ID   uint     `gorm:"primaryKey"`
	Name RoleName `gorm:"type:varchar(30);uniqueIndex;not null"`
}
