package models

import "gorm.io/gorm"

// Notification is a broadcast message. HostelID nil means system-wide.
// ReadBy holds the auth ids that have acknowledged it.
type Notification struct {
	gorm.Model
	HostelID *uint  `json:"hostel_id" gorm:"index"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message"`
	Audience string `json:"audience"` // "All", "Students", "Admins"

	ReadBy []uint `json:"read_by" gorm:"serializer:json"`
}
