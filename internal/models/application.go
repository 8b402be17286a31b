package models

import (
	"time"
)

type Application struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Aid           string    `gorm:"uniqueIndex;size:8;not null" json:"aid"`
	CategoryID    uint      `gorm:"not null;index;default:1" json:"category_id"`
	Category      Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Title         string    `gorm:"not null" json:"title"`
	Summary       string    `gorm:"size:300" json:"summary"`
	Description   string    `gorm:"type:text" json:"description"` // markdown
	ImagePath     string    `json:"image_path"`                   // object storage path, bucket root
	DownloadURL   string    `json:"download_url"`
	Version       string    `gorm:"size:30" json:"version"`
	DownloadCount int       `gorm:"default:0" json:"download_count"` // incremented server-side
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder  int       `gorm:"default:0" json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Filled by list queries, not a database column
	CommentCount int `gorm:"-" json:"comment_count"`
}
