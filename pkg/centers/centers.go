// Package centers lists MeeSeva service centers and finds the ones near a
// coordinate supplied by the browser's geolocation.
package centers

import (
	"math"
	"sort"
)

// DefaultCenter is the map center used when no position is known (Hyderabad).
var DefaultCenter = Coordinates{Lat: 17.3850, Lng: 78.4867}

// DefaultRadiusKm is used when the caller does not pass a radius.
const DefaultRadiusKm = 25.0

const earthRadiusKm = 6371.0

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Center is one service center.
type Center struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	Coordinates   Coordinates `json:"coordinates"`
	Services      []string    `json:"services"`
	Timings       string      `json:"timings"`
	ContactNumber string      `json:"contact_number"`
}

// Nearby is a center with its distance from the query point.
type Nearby struct {
	Center
	DistanceKm float64 `json:"distance_km"`
}

// Directory is an immutable set of centers.
type Directory struct {
	centers []Center
}

// NewDirectory returns a directory over the given centers.
func NewDirectory(centers []Center) *Directory {
	d := &Directory{centers: make([]Center, len(centers))}
	copy(d.centers, centers)
	return d
}

// Default returns the built-in directory.
func Default() *Directory {
	return NewDirectory([]Center{
		{
			ID:            "ms-001",
			Name:          "MeeSeva Center - Ameerpet",
			Address:       "6-3-456, Ameerpet Main Road, Hyderabad",
			Coordinates:   Coordinates{Lat: 17.4374, Lng: 78.4487},
			Services:      []string{"Certificates", "Land Records", "Social Security", "Welfare Schemes"},
			Timings:       "9:00 AM - 5:00 PM",
			ContactNumber: "+91-40-12345678",
		},
		{
			ID:            "ms-002",
			Name:          "MeeSeva Center - Kukatpally",
			Address:       "Plot 123, KPHB Phase 1, Kukatpally",
			Coordinates:   Coordinates{Lat: 17.4849, Lng: 78.4138},
			Services:      []string{"Certificates", "Land Records", "Bill Payments", "Welfare Schemes"},
			Timings:       "9:00 AM - 5:00 PM",
			ContactNumber: "+91-40-87654321",
		},
	})
}

// All returns every center.
func (d *Directory) All() []Center {
	out := make([]Center, len(d.centers))
	copy(out, d.centers)
	return out
}

// Near returns centers within radiusKm of from, closest first.
// A non-positive radius returns every center sorted by distance.
func (d *Directory) Near(from Coordinates, radiusKm float64) []Nearby {
	out := make([]Nearby, 0, len(d.centers))
	for _, c := range d.centers {
		dist := Distance(from, c.Coordinates)
		if radiusKm > 0 && dist > radiusKm {
			continue
		}
		out = append(out, Nearby{Center: c, DistanceKm: dist})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Distance is the haversine great-circle distance in kilometres.
func Distance(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
