package models

import "gorm.io/gorm"

// Admin is the profile of a hostel's administrator. Name/email/phone are
// mirrored from the paired Auth row and must be kept in lockstep with it.
// The "active" state of an admin lives on Auth.Verified, not here.
type Admin struct {
	gorm.Model
	AuthID      uint   `json:"auth_id" gorm:"uniqueIndex"`
	Auth        Auth   `gorm:"foreignKey:AuthID" json:"-"`
	HostelID    uint   `json:"hostel_id" gorm:"index"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Phone       string `json:"phone" gorm:"uniqueIndex"`
	Designation string `json:"designation"`
}
