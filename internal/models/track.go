package models

import (
	"time"
)

// Track is one entry of the music library player.
type Track struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Artist       string    `gorm:"not null" json:"artist"`
	CoverPath    string    `json:"cover_path"` // object storage, covers/
	AudioPath    string    `json:"audio_path"` // object storage, music/
	Duration     int       `gorm:"default:0" json:"duration"` // seconds
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
