package models

import (
	"time"
)

// Comment carries a denormalized author snapshot (name/email/avatar captured
// at post time) so rendering never depends on a live join against users.
// Rating is only meaningful on top-level comments; replies never carry one.
type Comment struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ApplicationID uint        `gorm:"not null;index" json:"application_id"`
	Application   Application `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"application"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	UserName      string      `gorm:"not null" json:"user_name"`
	UserEmail     string      `gorm:"not null" json:"user_email"`
	UserAvatar    string      `json:"user_avatar"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	Rating        *int        `json:"rating"`                 // 1-5, top-level comments only
	ParentID      *uint       `gorm:"index" json:"parent_id"` // nil for root comments
	Parent        *Comment    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent"`
	CreatedAt     time.Time   `json:"created_at"`
}
