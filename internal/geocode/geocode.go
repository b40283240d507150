package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/seido-app/backend/internal/models"
)

var ErrNotFound = errors.New("geocode not found")

type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat float64, lon float64, displayName string, confidence float64, err error)
}

// BuildQuery assembles the lookup string for a building address.
func BuildQuery(country string, b models.Building) string {
	parts := []string{}
	for _, v := range []string{b.Address, b.City, country} {
		v = strings.TrimSpace(v)
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func ShouldGeocode(b models.Building, force bool) bool {
	if force {
		return true
	}
	return b.Lat == nil || b.Lon == nil
}
