package models

import (
	"strings"

	"gorm.io/gorm"
)

type DonationType string

const (
	DonationOneTime   DonationType = "ONE_TIME"
	DonationRecurring DonationType = "RECURRING"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
	DonationCancelled DonationStatus = "CANCELLED"
)

type RecurringFrequency string

const (
	FrequencyWeekly    RecurringFrequency = "WEEKLY"
	FrequencyMonthly   RecurringFrequency = "MONTHLY"
	FrequencyQuarterly RecurringFrequency = "QUARTERLY"
	FrequencyYearly    RecurringFrequency = "YEARLY"
)

func ParseDonationType(raw string) (DonationType, bool) {
	t := DonationType(strings.ToUpper(strings.TrimSpace(raw)))
	if t == "" {
		return DonationOneTime, true
	}
	return t, t == DonationOneTime || t == DonationRecurring
}

func ParseDonationStatus(raw string) (DonationStatus, bool) {
	s := DonationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case DonationPending, DonationCompleted, DonationFailed, DonationCancelled:
		return s, true
	}
	return "", false
}

func ParseFrequency(raw string) (RecurringFrequency, bool) {
	f := RecurringFrequency(strings.ToUpper(strings.TrimSpace(raw)))
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return f, true
	}
	return "", false
}

type Donation struct {
	gorm.Model
	DonorID        uint                `json:"donor_id" gorm:"not null;index"`
	OrganizationID uint                `json:"organization_id" gorm:"not null;index"`
	Amount         float64             `json:"amount" gorm:"not null"`
	Currency       string              `json:"currency" gorm:"type:varchar(3);default:USD"`
	Type           DonationType        `json:"type" gorm:"type:varchar(16);not null"`
	Status         DonationStatus      `json:"status" gorm:"type:varchar(16);not null;default:PENDING"`
	IsRecurring    bool                `json:"is_recurring"`
	Frequency      *RecurringFrequency `json:"frequency" gorm:"type:varchar(16)"`
	Message        string              `json:"message" gorm:"type:text"`
	Anonymous      bool                `json:"anonymous"`

	Organization *OrganizationProfile `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
