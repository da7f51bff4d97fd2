package models

import (
	"time"

	"gorm.io/gorm"
)

// Hostel is the tenant unit. Every hostel-scoped table carries a HostelID
// foreign key back to this row.
type Hostel struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Capacity int    `json:"capacity"`

	// Subscription window; extended when a payment is recorded.
	ExpiresAt time.Time `json:"expires_at"`

	Rooms         []HostelRoom         `gorm:"foreignKey:HostelID" json:"rooms,omitempty"`
	Students      []HostelStudent      `gorm:"foreignKey:HostelID" json:"students,omitempty"`
	Admins        []Admin              `gorm:"foreignKey:HostelID" json:"admins,omitempty"`
	Announcements []HostelAnnouncement `gorm:"foreignKey:HostelID" json:"announcements,omitempty"`
	Events        []HostelEvent        `gorm:"foreignKey:HostelID" json:"events,omitempty"`
	MealPlans     []MealPlan           `gorm:"foreignKey:HostelID" json:"meal_plans,omitempty"`
	Guests        []TemporaryGuest     `gorm:"foreignKey:HostelID" json:"guests,omitempty"`
	Payments      []Payment            `gorm:"foreignKey:HostelID" json:"payments,omitempty"`
}
