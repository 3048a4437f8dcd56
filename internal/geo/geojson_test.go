package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"volunteer_hub/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestPoint(t *testing.T) {
	e := models.Event{Latitude: ptr(51.5), Longitude: ptr(-0.12)}
	raw, err := Point(e)
	require.NoError(t, err)

	var decoded struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Point", decoded.Type)
	assert.Equal(t, []float64{-0.12, 51.5}, decoded.Coordinates)
}

func TestPoint_NoCoordinates(t *testing.T) {
	raw, err := Point(models.Event{Latitude: ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestFeatureCollection_SkipsEventsWithoutCoordinates(t *testing.T) {
	events := []models.Event{
		{Model: gorm.Model{ID: 1}, Title: "Mapped", Latitude: ptr(10), Longitude: ptr(20), Category: models.CategoryEnvironment},
		{Model: gorm.Model{ID: 2}, Title: "Remote", IsRemote: true},
	}

	fc := FeatureCollection(events)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Mapped", fc.Features[0].Properties["title"])

	b, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"FeatureCollection"`)
}
