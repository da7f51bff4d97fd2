package models

import "gorm.io/gorm"

// Roles carried on an Auth row.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleStudent    = "Student"
	RoleUser       = "User"
)

// Auth is the unified login-credential record. Exactly one Auth row backs
// each Admin or HostelStudent profile; SuperAdmin and plain User rows
// stand alone.
type Auth struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	Phone        string `json:"phone" gorm:"uniqueIndex"`
	Password     string `json:"-"`
	Role         string `json:"role"` // "SuperAdmin", "Admin", "Student", "User"
	Verified     bool   `json:"verified" gorm:"default:false"`
	HostelID     *uint  `json:"hostel_id" gorm:"index"`
	AcademicYear string `json:"academic_year"`

	// Profile relations, at most one of which is set depending on Role.
	Admin   *Admin         `gorm:"foreignKey:AuthID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"admin,omitempty"`
	Student *HostelStudent `gorm:"foreignKey:AuthID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student,omitempty"`
}
