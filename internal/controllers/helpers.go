package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

var (
	errNoVolunteerProfile    = errors.New("volunteer profile not found")
	errNoOrganizationProfile = errors.New("organization profile not found")
)

// internalError logs err and answers a generic 500 without leaking details.
func internalError(c *gin.Context, err error, msg string) {
	middleware.Log(c).WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// parseID reads a positive numeric path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// isUniqueViolation recognizes duplicate-key errors from lib/pq and from
// GORM's error translation.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func hasTagError(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func volunteerProfileFor(db *gorm.DB, userID uint) (*models.VolunteerProfile, error) {
	var profile models.VolunteerProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoVolunteerProfile
		}
		return nil, err
	}
	return &profile, nil
}

func organizationProfileFor(db *gorm.DB, userID uint) (*models.OrganizationProfile, error) {
	var profile models.OrganizationProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoOrganizationProfile
		}
		return nil, err
	}
	return &profile, nil
}

// requireVolunteerProfile resolves the caller's volunteer profile or writes the error response.
func requireVolunteerProfile(c *gin.Context, db *gorm.DB) (*models.VolunteerProfile, bool) {
	profile, err := volunteerProfileFor(db, middleware.CurrentUserID(c))
	if errors.Is(err, errNoVolunteerProfile) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Volunteer profile required"})
		return nil, false
	}
	if err != nil {
		internalError(c, err, "requireVolunteerProfile: database error")
		return nil, false
	}
	return profile, true
}

// requireOrganizationProfile resolves the caller's organization profile or writes the error response.
func requireOrganizationProfile(c *gin.Context, db *gorm.DB) (*models.OrganizationProfile, bool) {
	profile, err := organizationProfileFor(db, middleware.CurrentUserID(c))
	if errors.Is(err, errNoOrganizationProfile) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Organization profile required"})
		return nil, false
	}
	if err != nil {
		internalError(c, err, "requireOrganizationProfile: database error")
		return nil, false
	}
	return profile, true
}
