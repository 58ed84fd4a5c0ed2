package location

import "github.com/golang/geo/s2"

// Coordinates is a validated (lat, lon) pair.
//
// The teacher builds an S2 cell index over coordinates for reverse
// geocoding (nearest-city lookup by distance). That reasoning is exactly
// what this module's spec rules out ("No geometric reasoning from
// coordinates" — see SPEC_FULL.md §B.1): nothing here ever measures a
// distance or builds a spatial index. s2.LatLng is kept purely as the
// validated storage type — its IsValid() is the only method this package
// calls.
type Coordinates struct {
	ll s2.LatLng
}

// NewCoordinates validates and constructs a Coordinates value. ok is
// false when lat/lon fall outside the valid range, in which case the
// returned value must not be stored.
func NewCoordinates(lat, lon float64) (c Coordinates, ok bool) {
	ll := s2.LatLngFromDegrees(lat, lon)
	return Coordinates{ll: ll}, ll.IsValid()
}

// Lat returns the latitude in degrees.
func (c Coordinates) Lat() float64 { return c.ll.Lat.Degrees() }

// Lon returns the longitude in degrees.
func (c Coordinates) Lon() float64 { return c.ll.Lng.Degrees() }
