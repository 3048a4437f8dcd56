package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

type volunteerProfileInput struct {
	Bio              *string         `json:"bio" binding:"omitempty,max=2000"`
	Skills           []string        `json:"skills"`
	Interests        []string        `json:"interests"`
	Location         *string         `json:"location"`
	Availability     json.RawMessage `json:"availability"`
	Phone            *string         `json:"phone"`
	DateOfBirth      *time.Time      `json:"date_of_birth"`
	EmergencyContact *string         `json:"emergency_contact"`
}

type organizationProfileInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Mission     *string `json:"mission"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	ZipCode     *string `json:"zip_code"`
	Logo        *string `json:"logo"`
	TaxID       *string `json:"tax_id"`
	FoundedYear *int    `json:"founded_year" binding:"omitempty,min=1800"`
}

// GetProfile returns the caller with whichever profile their role carries.
func GetProfile(c *gin.Context) {
	var user models.User
	err := config.DB.
		Preload("VolunteerProfile").
		Preload("OrganizationProfile").
		First(&user, middleware.CurrentUserID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, err, "GetProfile: database error")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateVolunteerProfile applies a partial update to the caller's volunteer profile.
func UpdateVolunteerProfile(c *gin.Context) {
	var input volunteerProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}
	if len(input.Availability) > 0 && !json.Valid(input.Availability) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Availability must be valid JSON"})
		return
	}

	profile, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	setString(&profile.Bio, input.Bio)
	setString(&profile.Location, input.Location)
	setString(&profile.Phone, input.Phone)
	setString(&profile.EmergencyContact, input.EmergencyContact)
	if input.Skills != nil {
		profile.Skills = pq.StringArray(trimAll(input.Skills))
	}
	if input.Interests != nil {
		profile.Interests = pq.StringArray(trimAll(input.Interests))
	}
	if len(input.Availability) > 0 {
		profile.Availability = string(input.Availability)
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}

	if err := config.DB.Omit("User").Save(profile).Error; err != nil {
		internalError(c, err, "UpdateVolunteerProfile: failed to save profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateOrganizationProfile applies a partial update to the caller's
// organization profile. Verification is admin-only and not editable here.
func UpdateOrganizationProfile(c *gin.Context) {
	var input organizationProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	profile, ok := requireOrganizationProfile(c, config.DB)
	if !ok {
		return
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
		return
	}
	setString(&profile.Name, input.Name)
	setString(&profile.Description, input.Description)
	setString(&profile.Mission, input.Mission)
	setString(&profile.Website, input.Website)
	setString(&profile.Phone, input.Phone)
	setString(&profile.Address, input.Address)
	setString(&profile.City, input.City)
	setString(&profile.State, input.State)
	setString(&profile.Country, input.Country)
	setString(&profile.ZipCode, input.ZipCode)
	setString(&profile.Logo, input.Logo)
	setString(&profile.TaxID, input.TaxID)
	if input.FoundedYear != nil {
		profile.FoundedYear = input.FoundedYear
	}

	if err := config.DB.Omit("is_verified").Save(profile).Error; err != nil {
		internalError(c, err, "UpdateOrganizationProfile: failed to save profile")
		return
	}

	// organization name and logo are embedded in listing responses
	invalidateListing(c)
	c.JSON(http.StatusOK, profile)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
