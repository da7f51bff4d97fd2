package models

import (
	"time"

	"gorm.io/gorm"
)

// HostelAnnouncement is hostel-scoped notice-board content.
type HostelAnnouncement struct {
	gorm.Model
	HostelID uint   `json:"hostel_id" gorm:"index"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Type     string `json:"type"`     // "General", "Maintenance", "Urgent"
	Priority string `json:"priority"` // "Low", "Medium", "High"
	Status   string `json:"status" gorm:"default:Active"`

	PublishAt *time.Time `json:"publish_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}
