package models

import (
	"time"

	"gorm.io/gorm"
)

// HostelEvent is a calendar entry for a hostel.
type HostelEvent struct {
	gorm.Model
	HostelID    uint      `json:"hostel_id" gorm:"index"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type"` // "Cultural", "Sports", "Meeting", "Other"
	Status      string    `json:"status" gorm:"default:Upcoming"`
	EventDate   time.Time `json:"event_date"`
}
