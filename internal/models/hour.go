package models

import (
	"time"

	"gorm.io/gorm"
)

// VolunteerHour is a self-reported block of service, optionally tied to an event.
type VolunteerHour struct {
	gorm.Model
	VolunteerID uint      `json:"volunteer_id" gorm:"not null;index"`
	EventID     *uint     `json:"event_id" gorm:"index"`
	Hours       float64   `json:"hours" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	VerifiedBy  *uint     `json:"verified_by"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
