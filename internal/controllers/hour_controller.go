package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

const maxHoursPerEntry = 24

type logHoursInput struct {
	EventID     *uint      `json:"event_id"`
	Hours       float64    `json:"hours" binding:"required,gt=0"`
	Date        *time.Time `json:"date" binding:"required"`
	Description string     `json:"description" binding:"max=2000"`
}

// LogHours records a block of volunteer time. When tied to an event the
// caller must hold an approved registration for it.
func LogHours(c *gin.Context) {
	var input logHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if input.Hours > maxHoursPerEntry {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hours must be between 0 and 24"})
		return
	}
	if input.Date.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date cannot be in the future"})
		return
	}

	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	if input.EventID != nil {
		var approved int64
		err := config.DB.Model(&models.EventRegistration{}).
			Where("event_id = ? AND volunteer_id = ? AND status = ?", *input.EventID, volunteer.ID, models.RegistrationApproved).
			Count(&approved).Error
		if err != nil {
			internalError(c, err, "LogHours: failed to check registration")
			return
		}
		if approved == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No approved registration for this event"})
			return
		}
	}

	hour := models.VolunteerHour{
		VolunteerID: volunteer.ID,
		EventID:     input.EventID,
		Hours:       input.Hours,
		Date:        *input.Date,
		Description: input.Description,
	}
	if err := config.DB.Create(&hour).Error; err != nil {
		internalError(c, err, "LogHours: failed to save hours")
		return
	}

	c.JSON(http.StatusCreated, hour)
}

// MyHours lists the calling volunteer's logged hours with a running total.
func MyHours(c *gin.Context) {
	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	var hours []models.VolunteerHour
	err := config.DB.Preload("Event").
		Where("volunteer_id = ?", volunteer.ID).
		Order("date DESC").
		Find(&hours).Error
	if err != nil {
		internalError(c, err, "MyHours: failed to fetch hours")
		return
	}

	var total, verified float64
	for _, h := range hours {
		total += h.Hours
		if h.IsVerified {
			verified += h.Hours
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"hours":          hours,
		"total_hours":    total,
		"verified_hours": verified,
	})
}

// VerifyHours marks an event-linked hour entry as verified by the organization
// running the event.
func VerifyHours(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var hour models.VolunteerHour
	if err := config.DB.Preload("Event").First(&hour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hours entry not found"})
			return
		}
		internalError(c, err, "VerifyHours: database error")
		return
	}
	if hour.Event == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only event hours can be verified"})
		return
	}
	if !authorizeOrganization(c, hour.Event.OrganizationID) {
		return
	}

	verifier := middleware.CurrentUserID(c)
	err := config.DB.Model(&hour).Omit(clause.Associations).Updates(map[string]interface{}{
		"is_verified": true,
		"verified_by": verifier,
	}).Error
	if err != nil {
		internalError(c, err, "VerifyHours: failed to update hours")
		return
	}
	hour.IsVerified = true
	hour.VerifiedBy = &verifier

	c.JSON(http.StatusOK, hour)
}
