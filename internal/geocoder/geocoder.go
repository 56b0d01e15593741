package geocoder

import (
	"strings"

	"github.com/janmarg/civicreport/internal/models"
)

// Default coordinates used when a city is not in the lookup table (New Delhi).
const (
	DefaultLat = 28.6139
	DefaultLng = 77.2090
)

// Geocoder fills in point coordinates for issue locations. It uses a static
// city lookup rather than an external service; reports come in with an address
// the reporter typed, and an approximate city centre is good enough for
// proximity checks.
type Geocoder struct {
	cities map[string][2]float64
}

// New creates a new geocoder instance
func New() *Geocoder {
	return &Geocoder{
		cities: map[string][2]float64{
			"delhi":      {28.6139, 77.2090},
			"new delhi":  {28.6139, 77.2090},
			"mumbai":     {19.0760, 72.8777},
			"bengaluru":  {12.9716, 77.5946},
			"bangalore":  {12.9716, 77.5946},
			"chennai":    {13.0827, 80.2707},
			"kolkata":    {22.5726, 88.3639},
			"hyderabad":  {17.3850, 78.4867},
			"pune":       {18.5204, 73.8567},
			"ahmedabad":  {23.0225, 72.5714},
			"jaipur":     {26.9124, 75.7873},
			"lucknow":    {26.8467, 80.9462},
			"chandigarh": {30.7333, 76.7794},
			"bhopal":     {23.2599, 77.4126},
			"patna":      {25.5941, 85.1376},
			"surat":      {21.1702, 72.8311},
			"kanpur":     {26.4499, 80.3319},
			"nagpur":     {21.1458, 79.0882},
			"indore":     {22.7196, 75.8577},
		},
	}
}

// Geocode fills in coordinates for a location that has none. Coordinates the
// reporter supplied are left untouched.
func (g *Geocoder) Geocode(loc *models.Location) error {
	if loc.Lat != 0 || loc.Lng != 0 {
		return nil
	}

	city := strings.ToLower(strings.TrimSpace(loc.City))
	if coords, ok := g.cities[city]; ok {
		loc.Lat = coords[0]
		loc.Lng = coords[1]
		return nil
	}

	loc.Lat = DefaultLat
	loc.Lng = DefaultLng
	return nil
}
