package listing

import (
	"strings"

	"volunteer_hub/internal/models"
)

// Refine re-applies search and category filtering to an already fetched
// page of events. It never touches the inactive flag: the server has already
// excluded inactive events from the page. category "" or "ALL" keeps every
// category; an unknown category matches nothing.
func Refine(events []models.Event, search, category string) []models.Event {
	f := Filter{Search: strings.TrimSpace(search)}

	category = strings.TrimSpace(category)
	if category != "" && !strings.EqualFold(category, models.CategoryAll) {
		c, err := models.ParseCategory(category)
		if err != nil {
			return []models.Event{}
		}
		f.Category = c
	}

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.matchesFields(e) {
			out = append(out, e)
		}
	}
	return out
}
