// internal/models/event.go
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type EventCategory string

const (
	CategoryEducation        EventCategory = "EDUCATION"
	CategoryEnvironment      EventCategory = "ENVIRONMENT"
	CategoryAnimalCare       EventCategory = "ANIMAL_CARE"
	CategoryDisasterRelief   EventCategory = "DISASTER_RELIEF"
	CategoryHealthcare       EventCategory = "HEALTHCARE"
	CategoryCommunityService EventCategory = "COMMUNITY_SERVICE"
	CategoryYouthDevelopment EventCategory = "YOUTH_DEVELOPMENT"
	CategorySeniorCare       EventCategory = "SENIOR_CARE"
	CategoryHomelessness     EventCategory = "HOMELESSNESS"
	CategoryFoodSecurity     EventCategory = "FOOD_SECURITY"
	CategoryOther            EventCategory = "OTHER"
)

// CategoryAll is the listing wildcard; it is never stored on an event.
const CategoryAll = "ALL"

var ErrInvalidCategory = errors.New("invalid event category")

// Categories lists every category in display order.
var Categories = []EventCategory{
	CategoryEducation,
	CategoryEnvironment,
	CategoryAnimalCare,
	CategoryDisasterRelief,
	CategoryHealthcare,
	CategoryCommunityService,
	CategoryYouthDevelopment,
	CategorySeniorCare,
	CategoryHomelessness,
	CategoryFoodSecurity,
	CategoryOther,
}

var categoryLabels = map[EventCategory]string{
	CategoryEducation:        "Education",
	CategoryEnvironment:      "Environment",
	CategoryAnimalCare:       "Animal Care",
	CategoryDisasterRelief:   "Disaster Relief",
	CategoryHealthcare:       "Healthcare",
	CategoryCommunityService: "Community Service",
	CategoryYouthDevelopment: "Youth Development",
	CategorySeniorCare:       "Senior Care",
	CategoryHomelessness:     "Homelessness",
	CategoryFoodSecurity:     "Food Security",
	CategoryOther:            "Other",
}

func (c EventCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c EventCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory accepts any casing and surrounding whitespace.
func ParseCategory(raw string) (EventCategory, error) {
	c := EventCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Event is a volunteer opportunity posted by an organization.
type Event struct {
	gorm.Model
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Category      EventCategory  `json:"category" gorm:"type:varchar(32);not null;index"`
	Location      string         `json:"location" gorm:"not null"`
	Latitude      *float64       `json:"latitude"`
	Longitude     *float64       `json:"longitude"`
	StartDate     time.Time      `json:"start_date" gorm:"not null;index"`
	EndDate       time.Time      `json:"end_date" gorm:"not null"`
	MaxVolunteers *int           `json:"max_volunteers"`
	Skills        pq.StringArray `json:"skills" gorm:"type:text[]"`
	Requirements  string         `json:"requirements" gorm:"type:text"`
	IsRemote      bool           `json:"is_remote" gorm:"default:false"`
	Image         string         `json:"image"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`

	OrganizationID uint                 `json:"organization_id" gorm:"not null;index"`
	Organization   *OrganizationProfile `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"organization,omitempty"`

	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

// HasCoordinates reports whether the event can be placed on a map.
func (e Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
