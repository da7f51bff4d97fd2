package models

import "gorm.io/gorm"

// HostelRoom is a bookable room inside one hostel. Referenced by students
// and temporary guests.
type HostelRoom struct {
	gorm.Model
	HostelID uint    `json:"hostel_id" gorm:"index"`
	RoomNo   string  `json:"room_no" binding:"required"`
	Type     string  `json:"type"` // "Single", "Double", "Dormitory"
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
	Floor    string  `json:"floor"`
}
