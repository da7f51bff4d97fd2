package models

import "gorm.io/gorm"

// ReportComplaint is a ticket raised by a student (or any Auth) against
// their hostel, with a threaded reply trail.
type ReportComplaint struct {
	gorm.Model
	HostelID uint `json:"hostel_id" gorm:"index"`
	AuthID   uint `json:"auth_id" gorm:"index"`
	Auth     Auth `gorm:"foreignKey:AuthID" json:"-"`

	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"` // "Maintenance", "Mess", "Security", "Other"
	Status      string `json:"status" gorm:"default:Open"`

	Replies []ReportReply `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"replies,omitempty"`
}

// ReportReply is one message in a report's thread.
type ReportReply struct {
	gorm.Model
	ReportID uint   `json:"report_id" gorm:"index"`
	AuthID   uint   `json:"auth_id"`
	Message  string `json:"message"`
}
