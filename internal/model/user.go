package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Authorization predicates switch on
// it exhaustively instead of comparing raw strings.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	Password     string         `json:"-" gorm:"not null"` // bcrypt hash, empty for Google-only accounts
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	Bio          string         `json:"bio,omitempty" gorm:"type:text"`
	AvatarURL    string         `json:"avatar_url,omitempty"`
	GoogleID     *string        `json:"-" gorm:"uniqueIndex"`
	IsGoogleUser bool           `json:"is_google_user" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// Principal is the authenticated identity passed explicitly into every service
// operation. It carries only what authorization checks need.
type Principal struct {
	ID    uint
	Email string
	Role  Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsInstructor() bool {
	return p.Role == RoleInstructor
}
