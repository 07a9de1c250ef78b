package models

import (
	"time"
)

// User roles. "blocked" is a role, not a status flag: a blocked user keeps
// the account but loses every write permission.
const (
	RoleUser    = "user"
	RoleExpert  = "expert"
	RoleAdmin   = "admin"
	RoleBlocked = "blocked"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash
	AvatarURL   string    `json:"avatar_url"`
	Points      int       `gorm:"default:0" json:"points"`
	Role        string    `gorm:"size:20;default:'user';not null" json:"role"`
	IsExpert    bool      `gorm:"default:false" json:"is_expert"`
	Language    string    `gorm:"size:5;default:'ru'" json:"language"` // ru, uz
	IsActivated bool      `gorm:"default:false" json:"is_activated"`
	VerifyCode  string    `gorm:"size:20" json:"-"` // activation/reset code
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) IsBlocked() bool {
	return u.Role == RoleBlocked
}

func (u *User) IsModerator() bool {
	return u.Role == RoleAdmin || u.Role == RoleExpert
}
