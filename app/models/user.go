package models

import "gorm.io/gorm"

// Role is the closed set of access tiers.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVendedor Role = "VENDEDOR"
	RoleCliente  Role = "CLIENTE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendedor, RoleCliente:
		return true
	}
	return false
}

// User is an account in the store. Password holds the bcrypt hash and is
// never serialised.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"`
	Role     Role   `gorm:"size:50;not null;default:CLIENTE" json:"role"`
}
