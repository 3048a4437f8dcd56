package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type VolunteerProfile struct {
	gorm.Model
	UserID           uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio              string         `json:"bio" gorm:"type:text"`
	Skills           pq.StringArray `json:"skills" gorm:"type:text[]"`
	Interests        pq.StringArray `json:"interests" gorm:"type:text[]"`
	Location         string         `json:"location"`
	Availability     string         `json:"availability" gorm:"type:text"` // raw JSON object
	Phone            string         `json:"phone"`
	DateOfBirth      *time.Time     `json:"date_of_birth"`
	EmergencyContact string         `json:"emergency_contact"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type OrganizationProfile struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Mission     string `json:"mission" gorm:"type:text"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	ZipCode     string `json:"zip_code"`
	Logo        string `json:"logo"`
	TaxID       string `json:"tax_id"`
	FoundedYear *int   `json:"founded_year"`
	IsVerified  bool   `json:"is_verified" gorm:"default:false"`
}
