package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/geo"
	"volunteer_hub/internal/listing"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
	"volunteer_hub/internal/notify"
)

const maxMapFeatures = 500

type createEventInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category" binding:"omitempty,eventcategory"`
	Location      string     `json:"location"`
	Latitude      *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude     *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	MaxVolunteers *int       `json:"max_volunteers" binding:"omitempty,min=1"`
	Skills        []string   `json:"skills"`
	Requirements  string     `json:"requirements"`
	IsRemote      bool       `json:"is_remote"`
	Image         string     `json:"image"`
}

type updateEventInput struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category" binding:"omitempty,eventcategory"`
	Location      *string    `json:"location"`
	Latitude      *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude     *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	MaxVolunteers *int       `json:"max_volunteers" binding:"omitempty,min=1"`
	Skills        []string   `json:"skills"`
	Requirements  *string    `json:"requirements"`
	IsRemote      *bool      `json:"is_remote"`
	Image         *string    `json:"image"`
}

func bindEventError(c *gin.Context, err error) {
	if hasTagError(err, "eventcategory") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
}

func (in createEventInput) missingRequired() bool {
	return strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Location) == "" ||
		in.StartDate == nil || in.EndDate == nil
}

// listingQuery returns a fresh events query with the listing preloads.
func listingQuery(filter listing.Filter) *gorm.DB {
	return config.DB.Model(&models.Event{}).
		Scopes(filter.Scope()).
		Preload("Organization", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "logo", "is_verified")
		}).
		Preload("Registrations", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "event_id")
		})
}

// ListEvents returns one page of active events matching the optional
// category and search filters, newest first.
func ListEvents(c *gin.Context) {
	filter, err := listing.NewFilter(c.Query("category"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	page := listing.ParsePage(c.Query("page"), c.Query("limit"))

	ctx := c.Request.Context()
	cacheKey, err := listingCache.Key(ctx, filter.CacheKey(),
		"page="+strconv.Itoa(page.Number), "limit="+strconv.Itoa(page.Limit))
	if err != nil {
		middleware.Log(c).WithError(err).Warn("ListEvents: cache unavailable")
		cacheKey = ""
	}

	var cached listEventsResponse
	if found, err := listingCache.Get(ctx, cacheKey, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	var total int64
	if err := config.DB.Model(&models.Event{}).Scopes(filter.Scope()).Count(&total).Error; err != nil {
		internalError(c, err, "ListEvents: failed to count events")
		return
	}

	var events []models.Event
	err = listingQuery(filter).
		Order("events.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&events).Error
	if err != nil {
		internalError(c, err, "ListEvents: failed to fetch events")
		return
	}

	resp := listEventsResponse{
		Events:     toEventResponses(events),
		Pagination: page.Describe(total),
	}
	if err := listingCache.Set(ctx, cacheKey, resp); err != nil {
		middleware.Log(c).WithError(err).Warn("ListEvents: failed to cache page")
	}
	c.JSON(http.StatusOK, resp)
}

// EventsMap returns active events with coordinates as a GeoJSON FeatureCollection.
func EventsMap(c *gin.Context) {
	filter, err := listing.NewFilter(c.Query("category"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	var events []models.Event
	err = config.DB.Scopes(filter.Scope()).
		Where("events.latitude IS NOT NULL AND events.longitude IS NOT NULL").
		Order("events.start_date ASC").
		Limit(maxMapFeatures).
		Find(&events).Error
	if err != nil {
		internalError(c, err, "EventsMap: failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, geo.FeatureCollection(events))
}

// ListCategories returns every event category with its display label.
func ListCategories(c *gin.Context) {
	out := make([]gin.H, 0, len(models.Categories))
	for _, cat := range models.Categories {
		out = append(out, gin.H{"value": cat, "label": cat.Label()})
	}
	c.JSON(http.StatusOK, out)
}

// GetEvent returns a single event with organization summary and registration count.
func GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var event models.Event
	err := config.DB.
		Preload("Organization").
		Preload("Registrations", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "event_id")
		}).
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		internalError(c, err, "GetEvent: database error")
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

// CreateEvent lets an organization post a new opportunity. The owning
// organization is always the caller's own profile.
func CreateEvent(c *gin.Context) {
	var input createEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindEventError(c, err)
		return
	}
	if input.missingRequired() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !input.EndDate.After(*input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude must be provided together"})
		return
	}

	org, ok := requireOrganizationProfile(c, config.DB)
	if !ok {
		return
	}

	category, _ := models.ParseCategory(input.Category)
	event := models.Event{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Category:       category,
		Location:       strings.TrimSpace(input.Location),
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		StartDate:      *input.StartDate,
		EndDate:        *input.EndDate,
		MaxVolunteers:  input.MaxVolunteers,
		Skills:         pq.StringArray(input.Skills),
		Requirements:   input.Requirements,
		IsRemote:       input.IsRemote,
		Image:          input.Image,
		IsActive:       true,
		OrganizationID: org.ID,
	}

	if err := config.DB.Create(&event).Error; err != nil {
		internalError(c, err, "CreateEvent: failed to create event")
		return
	}
	event.Organization = org

	invalidateListing(c)
	publishAsync(notify.SubjectEventCreated, func() error { return publisher.PublishEventCreated(&event) })

	c.JSON(http.StatusCreated, toEventResponse(event))
}

// UpdateEvent applies a partial update. Only the owning organization or an admin may edit.
func UpdateEvent(c *gin.Context) {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return
	}

	var input updateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindEventError(c, err)
		return
	}
	if err := applyEventUpdates(event, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Omit("Organization", "Registrations").Save(event).Error; err != nil {
		internalError(c, err, "UpdateEvent: failed to save event")
		return
	}

	invalidateListing(c)
	c.JSON(http.StatusOK, toEventResponse(*event))
}

// DeleteEvent deactivates an event; it disappears from listings but its
// registrations and logged hours remain.
func DeleteEvent(c *gin.Context) {
	event, ok := loadOwnedEvent(c)
	if !ok {
		return
	}

	if err := config.DB.Model(event).Omit(clause.Associations).Update("is_active", false).Error; err != nil {
		internalError(c, err, "DeleteEvent: failed to deactivate event")
		return
	}

	invalidateListing(c)
	c.JSON(http.StatusOK, gin.H{"message": "Event deactivated"})
}

// loadOwnedEvent fetches the :id event and checks the caller may manage it.
func loadOwnedEvent(c *gin.Context) (*models.Event, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	var event models.Event
	if err := config.DB.Preload("Organization").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return nil, false
		}
		internalError(c, err, "loadOwnedEvent: database error")
		return nil, false
	}

	if !authorizeOrganization(c, event.OrganizationID) {
		return nil, false
	}
	return &event, true
}

// authorizeOrganization passes admins and the user owning organizationID;
// everyone else gets a 403.
func authorizeOrganization(c *gin.Context, organizationID uint) bool {
	if middleware.CurrentRole(c) == models.RoleAdmin {
		return true
	}

	org, err := organizationProfileFor(config.DB, middleware.CurrentUserID(c))
	if err != nil && !errors.Is(err, errNoOrganizationProfile) {
		internalError(c, err, "authorizeOrganization: database error")
		return false
	}
	if org == nil || org.ID != organizationID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning organization can manage this resource"})
		return false
	}
	return true
}

func applyEventUpdates(event *models.Event, input *updateEventInput) error {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return errors.New("Title cannot be empty")
		}
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Category != nil {
		category, err := models.ParseCategory(*input.Category)
		if err != nil {
			return errors.New("Invalid category")
		}
		event.Category = category
	}
	if input.Location != nil {
		event.Location = strings.TrimSpace(*input.Location)
	}
	if input.Latitude != nil {
		event.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = input.Longitude
	}
	if (event.Latitude == nil) != (event.Longitude == nil) {
		return errors.New("Latitude and longitude must be provided together")
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if !event.EndDate.After(event.StartDate) {
		return errors.New("End date must be after start date")
	}
	if input.MaxVolunteers != nil {
		event.MaxVolunteers = input.MaxVolunteers
	}
	if input.Skills != nil {
		event.Skills = pq.StringArray(input.Skills)
	}
	if input.Requirements != nil {
		event.Requirements = *input.Requirements
	}
	if input.IsRemote != nil {
		event.IsRemote = *input.IsRemote
	}
	if input.Image != nil {
		event.Image = *input.Image
	}
	return nil
}

func invalidateListing(c *gin.Context) {
	if err := listingCache.Invalidate(c.Request.Context()); err != nil {
		middleware.Log(c).WithError(err).Warn("failed to invalidate listing cache")
	}
}
