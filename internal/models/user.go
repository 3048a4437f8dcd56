package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleVolunteer    Role = "VOLUNTEER"
	RoleOrganization Role = "ORGANIZATION"
	RoleAdmin        Role = "ADMIN"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole normalizes a role tag from user input.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleVolunteer, RoleOrganization, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     Role   `json:"role" gorm:"type:varchar(20);not null;index"`
	Image    string `json:"image"`

	// Exactly one of these exists, depending on Role. Admins have neither.
	VolunteerProfile    *VolunteerProfile    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"volunteer_profile,omitempty"`
	OrganizationProfile *OrganizationProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"organization_profile,omitempty"`
}
