package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/models"
)

const recentLimit = 5

type volunteerStats struct {
	TotalHours     float64 `json:"total_hours"`
	EventsAttended int64   `json:"events_attended"`
	UpcomingEvents int64   `json:"upcoming_events"`
	Certificates   int64   `json:"certificates"`
}

type recentEvent struct {
	ID     uint                      `json:"id"`
	Title  string                    `json:"title"`
	Date   time.Time                 `json:"date"`
	Hours  float64                   `json:"hours"`
	Status models.RegistrationStatus `json:"status"`
}

type organizationStats struct {
	TotalEvents          int64   `json:"total_events"`
	ActiveEvents         int64   `json:"active_events"`
	TotalVolunteers      int64   `json:"total_volunteers"`
	PendingRegistrations int64   `json:"pending_registrations"`
	TotalDonations       float64 `json:"total_donations"`
}

type recentRegistration struct {
	ID            uint                      `json:"id"`
	EventID       uint                      `json:"event_id"`
	EventTitle    string                    `json:"event_title"`
	VolunteerName string                    `json:"volunteer_name"`
	Status        models.RegistrationStatus `json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// VolunteerDashboard summarizes the caller's service record. An event counts
// as attended once it has ended with an approved registration; a certificate
// is one event with verified hours.
func VolunteerDashboard(c *gin.Context) {
	volunteer, ok := requireVolunteerProfile(c, config.DB)
	if !ok {
		return
	}
	db := config.DB
	now := time.Now()

	var stats volunteerStats
	err := db.Model(&models.VolunteerHour{}).
		Where("volunteer_id = ?", volunteer.ID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&stats.TotalHours).Error
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to sum hours")
		return
	}

	err = db.Model(&models.EventRegistration{}).
		Joins("JOIN events ON events.id = event_registrations.event_id").
		Where("event_registrations.volunteer_id = ? AND event_registrations.status = ? AND events.end_date < ?",
			volunteer.ID, models.RegistrationApproved, now).
		Count(&stats.EventsAttended).Error
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to count attended events")
		return
	}

	err = db.Model(&models.EventRegistration{}).
		Joins("JOIN events ON events.id = event_registrations.event_id").
		Where("event_registrations.volunteer_id = ? AND event_registrations.status IN ? AND events.is_active = ? AND events.start_date > ?",
			volunteer.ID, []models.RegistrationStatus{models.RegistrationPending, models.RegistrationApproved}, true, now).
		Count(&stats.UpcomingEvents).Error
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to count upcoming events")
		return
	}

	err = db.Model(&models.VolunteerHour{}).
		Where("volunteer_id = ? AND is_verified = ? AND event_id IS NOT NULL", volunteer.ID, true).
		Distinct("event_id").
		Count(&stats.Certificates).Error
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to count certificates")
		return
	}

	var registrations []models.EventRegistration
	err = db.Preload("Event").
		Where("volunteer_id = ?", volunteer.ID).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&registrations).Error
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to fetch recent registrations")
		return
	}

	hoursByEvent, err := hoursPerEvent(volunteer.ID)
	if err != nil {
		internalError(c, err, "VolunteerDashboard: failed to sum hours per event")
		return
	}

	recent := make([]recentEvent, 0, len(registrations))
	for _, r := range registrations {
		if r.Event == nil {
			continue
		}
		recent = append(recent, recentEvent{
			ID:     r.Event.ID,
			Title:  r.Event.Title,
			Date:   r.Event.StartDate,
			Hours:  hoursByEvent[r.Event.ID],
			Status: r.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_events": recent})
}

func hoursPerEvent(volunteerID uint) (map[uint]float64, error) {
	var rows []struct {
		EventID uint
		Total   float64
	}
	err := config.DB.Model(&models.VolunteerHour{}).
		Select("event_id, SUM(hours) AS total").
		Where("volunteer_id = ? AND event_id IS NOT NULL", volunteerID).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.EventID] = r.Total
	}
	return out, nil
}

// OrganizationDashboard summarizes the caller's events, volunteers and donations.
func OrganizationDashboard(c *gin.Context) {
	org, ok := requireOrganizationProfile(c, config.DB)
	if !ok {
		return
	}
	db := config.DB

	var stats organizationStats
	if err := db.Model(&models.Event{}).Where("organization_id = ?", org.ID).Count(&stats.TotalEvents).Error; err != nil {
		internalError(c, err, "OrganizationDashboard: failed to count events")
		return
	}
	err := db.Model(&models.Event{}).
		Where("organization_id = ? AND is_active = ?", org.ID, true).
		Count(&stats.ActiveEvents).Error
	if err != nil {
		internalError(c, err, "OrganizationDashboard: failed to count active events")
		return
	}

	orgRegistrations := func() *gorm.DB {
		return db.Model(&models.EventRegistration{}).
			Joins("JOIN events ON events.id = event_registrations.event_id").
			Where("events.organization_id = ?", org.ID)
	}

	err = orgRegistrations().
		Where("event_registrations.status = ?", models.RegistrationApproved).
		Distinct("event_registrations.volunteer_id").
		Count(&stats.TotalVolunteers).Error
	if err != nil {
		internalError(c, err, "OrganizationDashboard: failed to count volunteers")
		return
	}

	err = orgRegistrations().
		Where("event_registrations.status = ?", models.RegistrationPending).
		Count(&stats.PendingRegistrations).Error
	if err != nil {
		internalError(c, err, "OrganizationDashboard: failed to count pending registrations")
		return
	}

	err = db.Model(&models.Donation{}).
		Where("organization_id = ? AND status = ?", org.ID, models.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalDonations).Error
	if err != nil {
		internalError(c, err, "OrganizationDashboard: failed to sum donations")
		return
	}

	var registrations []models.EventRegistration
	err = orgRegistrations().
		Preload("Event").
		Preload("Volunteer.User").
		Order("event_registrations.created_at DESC").
		Limit(recentLimit).
		Find(&registrations).Error
	if err != nil {
		internalError(c, err, "OrganizationDashboard: failed to fetch recent registrations")
		return
	}

	recent := make([]recentRegistration, 0, len(registrations))
	for _, r := range registrations {
		item := recentRegistration{
			ID:        r.ID,
			EventID:   r.EventID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if r.Event != nil {
			item.EventTitle = r.Event.Title
		}
		if r.Volunteer != nil && r.Volunteer.User != nil {
			item.VolunteerName = r.Volunteer.User.Name
		}
		recent = append(recent, item)
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_registrations": recent})
}
