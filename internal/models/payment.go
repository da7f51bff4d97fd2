package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// Payment is a subscription transaction for a hostel. A Completed payment
// credits CreditMonths onto the hostel's expiry window.
type Payment struct {
	gorm.Model
	HostelID uint   `json:"hostel_id" gorm:"index"`
	Hostel   Hostel `gorm:"foreignKey:HostelID" json:"-"`

	Amount       float64   `json:"amount"`
	Method       string    `json:"method"` // "Cash", "Card", "BankTransfer", "UPI"
	Status       string    `json:"status" gorm:"default:Pending"`
	Reference    string    `json:"reference" gorm:"uniqueIndex"`
	PaidAt       time.Time `json:"paid_at"`
	CreditMonths int       `json:"credit_months"`
}
