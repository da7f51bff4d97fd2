package models

import (
	"time"

	"gorm.io/gorm"
)

// TemporaryGuest is a short-stay guest record. Status runs
// Pending -> Approved/Rejected -> CheckedOut.
type TemporaryGuest struct {
	gorm.Model
	HostelID uint        `json:"hostel_id" gorm:"index"`
	RoomID   *uint       `json:"room_id" gorm:"index"`
	Room     *HostelRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IDProof string `json:"id_proof"`

	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
	Status   string    `json:"status" gorm:"default:Pending"` // adds "CheckedOut"
}
