// Package geo renders event coordinates as GeoJSON.
package geo

import (
	"encoding/json"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"volunteer_hub/internal/models"
)

// Point returns the event location as a GeoJSON geometry, or nil when the
// event has no coordinates. GeoJSON order is longitude, latitude.
func Point(e models.Event) (json.RawMessage, error) {
	if !e.HasCoordinates() {
		return nil, nil
	}
	b, err := geojson.Marshal(point(e))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func point(e models.Event) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{*e.Longitude, *e.Latitude}).SetSRID(4326)
}

// FeatureCollection maps events with coordinates to point features.
// Events without coordinates are skipped.
func FeatureCollection(events []models.Event) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, e := range events {
		if !e.HasCoordinates() {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       jsonID(e.ID),
			Geometry: point(e),
			Properties: map[string]interface{}{
				"title":      e.Title,
				"category":   e.Category,
				"location":   e.Location,
				"start_date": e.StartDate,
				"is_remote":  e.IsRemote,
			},
		})
	}
	return fc
}

func jsonID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
