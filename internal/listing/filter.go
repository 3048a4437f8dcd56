// Package listing builds the event listing query: the filter predicate,
// pagination arithmetic and the in-memory refinement used by browsing clients.
package listing

import (
	"strings"

	"gorm.io/gorm"

	"volunteer_hub/internal/models"
)

// Filter is the structured predicate for the event listing.
// A zero Category and empty Search mean "no filter" for that dimension;
// only active events ever match.
type Filter struct {
	Category models.EventCategory
	Search   string
}

// NewFilter validates raw query values. An empty category or "ALL" disables
// category filtering; an unknown category yields models.ErrInvalidCategory.
func NewFilter(category, search string) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, models.CategoryAll) {
		return f, nil
	}

	c, err := models.ParseCategory(category)
	if err != nil {
		return Filter{}, err
	}
	f.Category = c
	return f, nil
}

func (f Filter) HasCategory() bool { return f.Category != "" }

func (f Filter) HasSearch() bool { return f.Search != "" }

// Scope applies the predicate to a query on the events table.
func (f Filter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("events.is_active = ?", true)
		if f.HasCategory() {
			db = db.Where("events.category = ?", f.Category)
		}
		if f.HasSearch() {
			pattern := "%" + escapeLike(f.Search) + "%"
			db = db.Where(
				"(events.title ILIKE ? OR events.description ILIKE ? OR events.location ILIKE ?)",
				pattern, pattern, pattern,
			)
		}
		return db
	}
}

// Matches evaluates the same predicate as Scope against an in-memory event.
func (f Filter) Matches(e models.Event) bool {
	if !e.IsActive {
		return false
	}
	return f.matchesFields(e)
}

func (f Filter) matchesFields(e models.Event) bool {
	if f.HasCategory() && e.Category != f.Category {
		return false
	}
	if f.HasSearch() {
		term := strings.ToLower(f.Search)
		return containsFold(e.Title, term) ||
			containsFold(e.Description, term) ||
			containsFold(e.Location, term)
	}
	return true
}

// CacheKey is a stable representation of the filter for cache keys.
func (f Filter) CacheKey() string {
	category := models.CategoryAll
	if f.HasCategory() {
		category = string(f.Category)
	}
	return "category=" + category + ":search=" + strings.ToLower(f.Search)
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
