// Package hierid implements the packed 13-hex-digit location id algebra:
// typing a location from its id, deriving parent ids by zeroing digits
// below a level, and the cross-type dominance order used to break scoring
// ties. It is the one piece of the engine every other rule is expressed
// in terms of (spec §4.1), so it is kept dependency-free and allocates
// nothing beyond the short strings it returns — the same "compute once,
// cheap accessor" discipline the teacher applies to its own derived
// per-city fields (country/region lookups via package-level interners).
package hierid

import (
	"strings"

	"github.com/andreiashu/geodisambig/internal/geoerr"
)

// Length is the fixed width of a location id: 13 uppercase hex digits.
const Length = 13

// Digit ranges, as half-open [start, end) positions into the id string.
const (
	continentStart, continentEnd   = 0, 1
	regionStart, regionEnd         = 1, 2
	countryStart, countryEnd       = 2, 4
	adminArea2Start, adminArea2End = 4, 6
	adminArea1Start, adminArea1End = 6, 9
	cityStart, cityEnd             = 9, 13
)

// Type is the location level deduced from which id digit ranges are zero.
type Type int

const (
	Continent Type = iota
	Region
	Country
	AdminArea2
	AdminArea1
	City
)

func (t Type) String() string {
	switch t {
	case Continent:
		return "Continent"
	case Region:
		return "Region"
	case Country:
		return "Country"
	case AdminArea2:
		return "AdminArea2"
	case AdminArea1:
		return "AdminArea1"
	case City:
		return "City"
	default:
		return "Unknown"
	}
}

// Validate reports whether id is exactly 13 uppercase hex digits.
func Validate(id string) error {
	if len(id) != Length {
		return &geoerr.MalformedIDError{ID: id}
	}
	for _, r := range id {
		if !isUpperHex(r) {
			return &geoerr.MalformedIDError{ID: id}
		}
	}
	return nil
}

func isUpperHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}

func isAllZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

// DeriveType determines the location's type from the first digit range
// (from the top) that is non-zero and whose sub-ranges are all zero.
// id must already be validated.
func DeriveType(id string) Type {
	if isAllZero(id[regionStart:]) {
		return Continent
	}
	if isAllZero(id[countryStart:]) {
		return Region
	}
	if isAllZero(id[adminArea2Start:]) {
		return Country
	}
	if isAllZero(id[adminArea1Start:]) {
		return AdminArea2
	}
	if isAllZero(id[cityStart:]) {
		return AdminArea1
	}
	return City
}

// IsInsideContinent reports whether t is contained by a continent (i.e.
// is not itself a continent or a region — region and continent are
// siblings in the hierarchy, not ancestor/descendant).
func IsInsideContinent(t Type) bool {
	return t != Continent && t != Region
}

// IsInsideRegion mirrors IsInsideContinent: each location is inside
// exactly one region, a distinct axis from the continent axis, but
// governed by the same predicate.
func IsInsideRegion(t Type) bool {
	return IsInsideContinent(t)
}

// IsInsideCountry reports whether t sits below a country.
func IsInsideCountry(t Type) bool {
	return IsInsideContinent(t) && t != Country
}

// IsInsideAdminArea2 reports whether id/t sits below a populated
// admin-area-2 digit range.
func IsInsideAdminArea2(id string, t Type) bool {
	return (t == City || t == AdminArea1) && id[adminArea2Start:adminArea2End] != "00"
}

// IsInsideAdminArea1 reports whether id/t sits below a populated
// admin-area-1 digit range.
func IsInsideAdminArea1(id string, t Type) bool {
	return t == City && id[adminArea1Start:adminArea1End] != "000"
}

// ContinentID returns the id's continent-level parent id. The continent
// digit is kept, everything else zeroed.
func ContinentID(id string) string {
	return id[continentStart:continentEnd] + strings.Repeat("0", Length-continentEnd)
}

// RegionID returns the id's region-level parent id. Unlike the other
// parent-id functions this does NOT keep the prefix: the region digit is
// read from position 1 and the continent digit is zeroed, because region
// and continent are siblings, not nested.
func RegionID(id string) string {
	return "0" + id[regionStart:regionEnd] + strings.Repeat("0", Length-regionEnd)
}

// CountryID returns the id's country-level parent id.
func CountryID(id string) string {
	return id[:countryEnd] + strings.Repeat("0", Length-countryEnd)
}

// AdminArea2ID returns the id's admin-area-2-level parent id.
func AdminArea2ID(id string) string {
	return id[:adminArea2End] + strings.Repeat("0", Length-adminArea2End)
}

// AdminArea1ID returns the id's admin-area-1-level parent id.
func AdminArea1ID(id string) string {
	return id[:adminArea1End] + strings.Repeat("0", Length-adminArea1End)
}

// ParentsIDs returns the ordered list of containing-location ids, nearest
// parent first, up to the continent — excluding the region, which is a
// sibling axis rather than an ancestor. Only levels the id actually sits
// inside are included, so a location missing an intermediate level (e.g.
// a city with no admin-area-1) yields a shorter list, never a zero id
// standing in for "absent".
//
// This ordering is what makes the "ID zeroing closure" law hold: for any
// id, ParentsIDs of ParentsIDs(id)[i] is always a suffix of
// ParentsIDs(id) — each parent's own parent chain is what's left after
// dropping the levels nearer than it.
func ParentsIDs(id string, t Type) []string {
	var ps []string
	if IsInsideAdminArea1(id, t) {
		ps = append(ps, AdminArea1ID(id))
	}
	if IsInsideAdminArea2(id, t) {
		ps = append(ps, AdminArea2ID(id))
	}
	if IsInsideCountry(t) {
		ps = append(ps, CountryID(id))
	}
	if IsInsideContinent(t) {
		ps = append(ps, ContinentID(id))
	}
	return ps
}
