package models

import (
	"time"
)

type Demo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Summary      string    `gorm:"size:300" json:"summary"`
	PreviewPath  string    `json:"preview_path"` // object storage, previews/
	DemoURL      string    `json:"demo_url"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
