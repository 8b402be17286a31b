package models

import (
	"time"
)

// Download marks that a user fetched an application at least once. It only
// drives the download / re-download wording, it is not an audit ledger.
type Download struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;uniqueIndex:idx_user_app" json:"user_id"`
	User          User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ApplicationID uint        `gorm:"not null;uniqueIndex:idx_user_app" json:"application_id"`
	Application   Application `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"application"`
	CreatedAt     time.Time   `json:"created_at"`
}
