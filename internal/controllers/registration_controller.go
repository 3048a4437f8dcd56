package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
	"volunteer_hub/internal/notify"
)

var (
	errAlreadyRegistered     = errors.New("already registered")
	errEventFull             = errors.New("event is full")
	errRegistrationCancelled = errors.New("registration cancelled")
)

type registerForEventInput struct {
	Note string `json:"note" binding:"max=1000"`
}

type registrationDecisionInput struct {
	Status string `json:"status" binding:"required,registrationdecision"`
	Note   string `json:"note" binding:"max=1000"`
}

// RegisterForEvent signs the calling volunteer up for an event. A previously
// cancelled registration is reopened as PENDING.
func RegisterForEvent(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input registerForEventInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload"})
			return
		}
	}

	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	var event models.Event
	if err := config.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		internalError(c, err, "RegisterForEvent: failed to load event")
		return
	}
	if !event.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is not accepting registrations"})
		return
	}

	var registration models.EventRegistration
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("event_id = ? AND volunteer_id = ?", event.ID, volunteer.ID).First(&registration).Error
		switch {
		case err == nil:
			if registration.Status != models.RegistrationCancelled {
				return errAlreadyRegistered
			}
			registration.Status = models.RegistrationPending
			registration.Note = input.Note
			return tx.Model(&registration).Updates(map[string]interface{}{
				"status": registration.Status,
				"note":   registration.Note,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			registration = models.EventRegistration{
				EventID:     event.ID,
				VolunteerID: volunteer.ID,
				Status:      models.RegistrationPending,
				Note:        input.Note,
			}
			return tx.Create(&registration).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, errAlreadyRegistered) || isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this event"})
			return
		}
		internalError(c, err, "RegisterForEvent: failed to save registration")
		return
	}

	invalidateListing(c)
	publishAsync(notify.SubjectRegistrationCreated, func() error {
		return publisher.PublishRegistration(notify.SubjectRegistrationCreated, &registration)
	})

	c.JSON(http.StatusCreated, registration)
}

// CancelRegistration withdraws the calling volunteer from an event.
func CancelRegistration(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	var registration models.EventRegistration
	err := config.DB.Where("event_id = ? AND volunteer_id = ?", eventID, volunteer.ID).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		internalError(c, err, "CancelRegistration: database error")
		return
	}
	if registration.Status == models.RegistrationCancelled {
		c.JSON(http.StatusOK, registration)
		return
	}

	if err := config.DB.Model(&registration).Update("status", models.RegistrationCancelled).Error; err != nil {
		internalError(c, err, "CancelRegistration: failed to update registration")
		return
	}
	registration.Status = models.RegistrationCancelled

	publishAsync(notify.SubjectRegistrationUpdated, func() error {
		return publisher.PublishRegistration(notify.SubjectRegistrationUpdated, &registration)
	})
	c.JSON(http.StatusOK, registration)
}

// ListEventRegistrations shows the owning organization who signed up, with
// an optional ?status filter.
func ListEventRegistrations(c *gin.Context) {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return
	}

	query := config.DB.
		Preload("Volunteer").
		Preload("Volunteer.User").
		Where("event_id = ?", event.ID)

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseRegistrationStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var registrations []models.EventRegistration
	if err := query.Order("created_at ASC").Find(&registrations).Error; err != nil {
		internalError(c, err, "ListEventRegistrations: failed to fetch registrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

// UpdateRegistrationStatus approves or rejects a registration. Approval is
// refused once the event has max_volunteers approved registrations.
func UpdateRegistrationStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input registrationDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	status, _ := models.ParseRegistrationStatus(input.Status)

	var registration models.EventRegistration
	if err := config.DB.Preload("Event").First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		internalError(c, err, "UpdateRegistrationStatus: database error")
		return
	}
	if registration.Event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if !authorizeOrganization(c, registration.Event.OrganizationID) {
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, registration.EventID).Error; err != nil {
			return err
		}

		// re-read under lock: the volunteer may have cancelled since the first read
		var current models.EventRegistration
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, registration.ID).Error; err != nil {
			return err
		}
		if current.Status == models.RegistrationCancelled {
			return errRegistrationCancelled
		}

		if status == models.RegistrationApproved && current.Status != models.RegistrationApproved && event.MaxVolunteers != nil {
			var approved int64
			err := tx.Model(&models.EventRegistration{}).
				Where("event_id = ? AND status = ?", event.ID, models.RegistrationApproved).
				Count(&approved).Error
			if err != nil {
				return err
			}
			if approved >= int64(*event.MaxVolunteers) {
				return errEventFull
			}
		}

		updates := map[string]interface{}{"status": status}
		if input.Note != "" {
			updates["note"] = input.Note
		}
		return tx.Model(&current).Updates(updates).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errRegistrationCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration was cancelled by the volunteer"})
		case errors.Is(err, errEventFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Event is full"})
		default:
			internalError(c, err, "UpdateRegistrationStatus: failed to update registration")
		}
		return
	}
	registration.Status = status
	if input.Note != "" {
		registration.Note = input.Note
	}

	publishAsync(notify.SubjectRegistrationUpdated, func() error {
		return publisher.PublishRegistration(notify.SubjectRegistrationUpdated, &registration)
	})
	c.JSON(http.StatusOK, registration)
}

// MyRegistrations lists the calling volunteer's registrations with their events.
func MyRegistrations(c *gin.Context) {
	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}

	var registrations []models.EventRegistration
	err := config.DB.
		Preload("Event").
		Preload("Event.Organization").
		Where("volunteer_id = ?", volunteer.ID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		middleware.Log(c).WithError(err).Error("MyRegistrations: failed to fetch registrations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}
