package models

import (
	"time"

	"gorm.io/gorm"
)

// MealPlan is one menu slot of a hostel's weekly plan.
type MealPlan struct {
	gorm.Model
	HostelID uint   `json:"hostel_id" gorm:"index"`
	Day      string `json:"day"`       // "Monday" .. "Sunday"
	MealType string `json:"meal_type"` // "Breakfast", "Lunch", "Dinner"
	Items    string `json:"items"`
	Status   string `json:"status" gorm:"default:Active"`

	EffectiveFrom *time.Time `json:"effective_from"`
}
