package models

import (
	"strings"

	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationApproved  RegistrationStatus = "APPROVED"
	RegistrationRejected  RegistrationStatus = "REJECTED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

func ParseRegistrationStatus(raw string) (RegistrationStatus, bool) {
	s := RegistrationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected, RegistrationCancelled:
		return s, true
	}
	return "", false
}

// EventRegistration links a volunteer to an event.
type EventRegistration struct {
	gorm.Model
	EventID     uint               `json:"event_id" gorm:"not null;uniqueIndex:idx_registration_event_volunteer"`
	VolunteerID uint               `json:"volunteer_id" gorm:"not null;uniqueIndex:idx_registration_event_volunteer"`
	Status      RegistrationStatus `json:"status" gorm:"type:varchar(16);not null;default:PENDING;index"`
	Note        string             `json:"note" gorm:"type:text"`

	Event     *Event            `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Volunteer *VolunteerProfile `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}
