package controllers

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/geo"
	"volunteer_hub/internal/listing"
	"volunteer_hub/internal/models"
)

type organizationSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Logo       string `json:"logo"`
	IsVerified bool   `json:"is_verified"`
}

// EventResponse is the API shape of an event.
type EventResponse struct {
	ID                uint                 `json:"id"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Category          models.EventCategory `json:"category"`
	CategoryLabel     string               `json:"category_label"`
	Location          string               `json:"location"`
	Latitude          *float64             `json:"latitude"`
	Longitude         *float64             `json:"longitude"`
	Geometry          json.RawMessage      `json:"geometry,omitempty"`
	StartDate         time.Time            `json:"start_date"`
	EndDate           time.Time            `json:"end_date"`
	MaxVolunteers     *int                 `json:"max_volunteers"`
	Skills            []string             `json:"skills"`
	Requirements      string               `json:"requirements"`
	IsRemote          bool                 `json:"is_remote"`
	Image             string               `json:"image"`
	IsActive          bool                 `json:"is_active"`
	OrganizationID    uint                 `json:"organization_id"`
	Organization      *organizationSummary `json:"organization,omitempty"`
	RegistrationCount int                  `json:"registration_count"`
}

type listEventsResponse struct {
	Events     []EventResponse    `json:"events"`
	Pagination listing.Pagination `json:"pagination"`
}

func toEventResponse(e models.Event) EventResponse {
	point, err := geo.Point(e)
	if err != nil {
		logrus.WithError(err).WithField("event_id", e.ID).Warn("toEventResponse: could not encode geometry")
	}

	skills := []string(e.Skills)
	if skills == nil {
		skills = []string{}
	}

	resp := EventResponse{
		ID:                e.ID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
		Title:             e.Title,
		Description:       e.Description,
		Category:          e.Category,
		CategoryLabel:     e.Category.Label(),
		Location:          e.Location,
		Latitude:          e.Latitude,
		Longitude:         e.Longitude,
		Geometry:          point,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		MaxVolunteers:     e.MaxVolunteers,
		Skills:            skills,
		Requirements:      e.Requirements,
		IsRemote:          e.IsRemote,
		Image:             e.Image,
		IsActive:          e.IsActive,
		OrganizationID:    e.OrganizationID,
		RegistrationCount: len(e.Registrations),
	}
	if e.Organization != nil {
		resp.Organization = &organizationSummary{
			ID:         e.Organization.ID,
			Name:       e.Organization.Name,
			Logo:       e.Organization.Logo,
			IsVerified: e.Organization.IsVerified,
		}
	}
	return resp
}

func toEventResponses(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}
