package geocode

import (
	"testing"

	"github.com/seido-app/backend/internal/models"
)

func TestBuildQuery(t *testing.T) {
	b := models.Building{Address: "12 rue de la Paix", City: "Paris"}
	q := BuildQuery("France", b)
	if q != "12 rue de la Paix, Paris, France" {
		t.Fatalf("unexpected query: %s", q)
	}

	q = BuildQuery("", models.Building{Address: "12 rue de la Paix"})
	if q != "12 rue de la Paix" {
		t.Fatalf("unexpected query without city/country: %s", q)
	}
}

func TestShouldGeocodeSkipWhenLatLonExists(t *testing.T) {
	lat := 48.8698
	lon := 2.3311
	b := models.Building{Lat: &lat, Lon: &lon}
	if ShouldGeocode(b, false) {
		t.Fatalf("expected geocode to be skipped when lat/lon exist")
	}
	if !ShouldGeocode(b, true) {
		t.Fatalf("expected geocode when force is true")
	}
	if !ShouldGeocode(models.Building{}, false) {
		t.Fatalf("expected geocode when coordinates are missing")
	}
}
