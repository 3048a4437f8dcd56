// Package browse is a listing client that keeps the last fetched page of
// events and narrows it locally as the user types or picks a category.
// Only the fetched page is refined; other pages need another Load.
package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"volunteer_hub/internal/listing"
	"volunteer_hub/internal/models"
)

// Event is the subset of the listing response the client works with.
type Event struct {
	ID                uint                 `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Category          models.EventCategory `json:"category"`
	Location          string               `json:"location"`
	StartDate         time.Time            `json:"start_date"`
	EndDate           time.Time            `json:"end_date"`
	Skills            []string             `json:"skills"`
	IsRemote          bool                 `json:"is_remote"`
	IsActive          bool                 `json:"is_active"`
	OrganizationID    uint                 `json:"organization_id"`
	RegistrationCount int                  `json:"registration_count"`
}

type page struct {
	Events     []Event            `json:"events"`
	Pagination listing.Pagination `json:"pagination"`
}

// Client fetches pages from GET /api/events.
type Client struct {
	baseURL string
	http    *http.Client

	mu         sync.Mutex
	events     []Event
	pagination listing.Pagination
	search     string
	category   string
	visible    []Event
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		category: models.CategoryAll,
	}
}

// Load fetches one page and replaces the local state. The current search and
// category are reapplied to the new page.
func (c *Client) Load(ctx context.Context, pageNumber, limit int) error {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageNumber))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch events: unexpected status %d", resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return fmt.Errorf("decode events: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = p.Events
	c.pagination = p.Pagination
	c.refresh()
	return nil
}

// SetSearch narrows the loaded page without a network call.
func (c *Client) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = search
	c.refresh()
}

// SetCategory narrows the loaded page without a network call. "ALL" or ""
// shows every category.
func (c *Client) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.refresh()
}

// Visible returns a copy of the currently displayed events.
func (c *Client) Visible() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.visible))
	copy(out, c.visible)
	return out
}

// Pagination describes the page last loaded from the server.
func (c *Client) Pagination() listing.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// refresh must be called with mu held.
func (c *Client) refresh() {
	byID := make(map[uint]Event, len(c.events))
	all := make([]models.Event, 0, len(c.events))
	for _, e := range c.events {
		byID[e.ID] = e
		all = append(all, e.model())
	}

	refined := listing.Refine(all, c.search, c.category)
	c.visible = make([]Event, 0, len(refined))
	for _, m := range refined {
		c.visible = append(c.visible, byID[m.ID])
	}
}

func (e Event) model() models.Event {
	m := models.Event{
		Title:          e.Title,
		Description:    e.Description,
		Category:       e.Category,
		Location:       e.Location,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Skills:         e.Skills,
		IsRemote:       e.IsRemote,
		IsActive:       e.IsActive,
		OrganizationID: e.OrganizationID,
	}
	m.ID = e.ID
	return m
}
