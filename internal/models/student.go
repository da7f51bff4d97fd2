package models

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle statuses shared by students and temporary guests. Guests add
// CheckedOut.
const (
	StatusPending    = "Pending"
	StatusApproved   = "Approved"
	StatusRejected   = "Rejected"
	StatusCheckedOut = "CheckedOut"
)

// HostelStudent is a student profile, paired 1:1 with an Auth row and
// scoped to a single hostel. RoomID is nil until a room is assigned.
type HostelStudent struct {
	gorm.Model
	AuthID   uint        `json:"auth_id" gorm:"uniqueIndex"`
	Auth     Auth        `gorm:"foreignKey:AuthID" json:"-"`
	HostelID uint        `json:"hostel_id" gorm:"index"`
	RoomID   *uint       `json:"room_id" gorm:"index"`
	Room     *HostelRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Course        string `json:"course"`
	AcademicYear  string `json:"academic_year"`

	Status       string     `json:"status" gorm:"default:Pending"` // "Pending", "Approved", "Rejected"
	CheckInDate  *time.Time `json:"check_in_date"`
	CheckOutDate *time.Time `json:"check_out_date"`
}
