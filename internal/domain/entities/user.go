package entities

import (
	"time"
)

// Role is the sole authorization signal in the system
type Role string

const (
	RoleCliente        Role = "cliente"
	RoleNegocioGratis  Role = "negocio_gratis"
	RoleNegocioPremium Role = "negocio_premium"
	RoleAdmin          Role = "admin"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleCliente, RoleNegocioGratis, RoleNegocioPremium, RoleAdmin:
		return true
	}
	return false
}

// IsBusiness reports whether the role belongs to a business owner
func (r Role) IsBusiness() bool {
	return r == RoleNegocioGratis || r == RoleNegocioPremium
}

// User represents an account in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	City         string    `json:"city,omitempty" db:"city"`
	AvatarURL    string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user can perform moderation actions
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPremium reports whether the user has an active premium tier
func (u *User) IsPremium() bool {
	return u.Role == RoleNegocioPremium
}

// Review is a rating plus comment tied to one business and one author.
// Reviews are immutable once created.
type Review struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	BusinessID string    `json:"business_id" db:"business_id"`
	Rating     int       `json:"rating" db:"rating"` // 1-5
	Comment    string    `json:"comment" db:"comment"`
	UserName   string    `json:"user_name,omitempty" db:"user_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
