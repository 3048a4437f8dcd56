package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer_hub/internal/models"
)

func event(title, description, location string, category models.EventCategory, active bool) models.Event {
	return models.Event{
		Title:       title,
		Description: description,
		Location:    location,
		Category:    category,
		IsActive:    active,
	}
}

func TestNewFilter_AllAndEmptyDisableCategory(t *testing.T) {
	for _, raw := range []string{"", "ALL", "all", "  All "} {
		f, err := NewFilter(raw, "")
		require.NoError(t, err)
		assert.False(t, f.HasCategory(), "category %q", raw)
		assert.False(t, f.HasSearch())
	}
}

func TestNewFilter_NormalizesCategoryAndSearch(t *testing.T) {
	f, err := NewFilter("environment", "  beach ")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryEnvironment, f.Category)
	assert.Equal(t, "beach", f.Search)
}

func TestNewFilter_UnknownCategory(t *testing.T) {
	_, err := NewFilter("GARDENING", "")
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestFilterMatches_NoFiltersExcludesOnlyInactive(t *testing.T) {
	f, err := NewFilter("ALL", "")
	require.NoError(t, err)

	assert.True(t, f.Matches(event("a", "b", "c", models.CategoryEducation, true)))
	assert.True(t, f.Matches(event("", "", "", models.CategoryOther, true)))
	assert.False(t, f.Matches(event("a", "b", "c", models.CategoryEducation, false)))
}

func TestFilterMatches_Category(t *testing.T) {
	f, err := NewFilter("HEALTHCARE", "")
	require.NoError(t, err)

	assert.True(t, f.Matches(event("Clinic", "", "", models.CategoryHealthcare, true)))
	assert.False(t, f.Matches(event("Clinic", "", "", models.CategoryEducation, true)))
}

func TestFilterMatches_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	f, err := NewFilter("", "PARK")
	require.NoError(t, err)

	assert.True(t, f.Matches(event("Park cleanup", "", "", models.CategoryEnvironment, true)))
	assert.True(t, f.Matches(event("Cleanup", "Pick litter in the park", "", models.CategoryEnvironment, true)))
	assert.True(t, f.Matches(event("Cleanup", "", "Riverside Park", models.CategoryEnvironment, true)))
	assert.False(t, f.Matches(event("Cleanup", "Beach", "Harbor", models.CategoryEnvironment, true)))
}

func TestFilterMatches_CategoryAndSearchAreConjoined(t *testing.T) {
	f, err := NewFilter("EDUCATION", "math")
	require.NoError(t, err)

	assert.True(t, f.Matches(event("Math tutoring", "", "", models.CategoryEducation, true)))
	assert.False(t, f.Matches(event("Math tutoring", "", "", models.CategoryYouthDevelopment, true)))
	assert.False(t, f.Matches(event("Reading", "", "", models.CategoryEducation, true)))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
}

func TestFilterCacheKey(t *testing.T) {
	a, _ := NewFilter("all", "Beach")
	b, _ := NewFilter("", "beach")
	c, _ := NewFilter("ENVIRONMENT", "beach")

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
