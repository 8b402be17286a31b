package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash
	Avatar      string    `gorm:"default:🦊" json:"avatar"` // emoji avatar
	Role        string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	GoogleID    string    `gorm:"index" json:"google_id"`
	GoogleEmail string    `gorm:"index" json:"google_email"`
	IsActivated bool      `gorm:"default:false" json:"is_activated"`
	VerifyCode  string    `gorm:"size:20" json:"-"` // activation / password reset
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
