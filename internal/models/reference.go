package models

import (
	"time"
)

// Reference is a client reference shown on the public references page.
type Reference struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Company      string           `gorm:"not null" json:"company"`
	Website      string           `json:"website"`
	LogoPath     string           `json:"logo_path"` // object storage, logos/
	Description  string           `gorm:"type:text" json:"description"`
	IsActive     bool             `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int              `gorm:"default:0" json:"display_order"`
	Images       []ReferenceImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ReferenceImage is one banner of a reference, at most five per reference.
type ReferenceImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReferenceID  uint      `gorm:"not null;index" json:"reference_id"`
	BannerPath   string    `gorm:"not null" json:"banner_path"` // object storage, banners/
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
