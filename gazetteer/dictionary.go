// Package gazetteer provides the Dictionary query surface the
// disambiguation engine is built against (spec §3.4/§4.2/§6.2), plus the
// loader that builds one from a line-delimited JSON gazetteer file — an
// external collaborator the core spec assumes exists but leaves
// unspecified (spec §1).
package gazetteer

import (
	"sort"
	"strings"

	"github.com/andreiashu/geodisambig/internal/geoerr"
	"github.com/andreiashu/geodisambig/location"
)

// Dictionary is the immutable, read-only gazetteer index the engine
// consults. Two internal indexes mirror geobed's own nameIndex-over-
// Cities design: one by uppercase id (unique), one by lower-cased label
// (many-to-many — several locations can share a label, e.g. "Georgia"
// the country and "Georgia" the US state).
type Dictionary struct {
	byID    map[string]*location.Location
	byLabel map[string][]*location.Location
}

// New builds a Dictionary from an already-constructed set of locations.
// Locations are assumed to have passed whatever loader-level filtering
// applies (spec §4.2: hamlet/village subtypes and null-name records are
// never present) — New itself does no filtering, only indexing.
func New(locations []*location.Location) *Dictionary {
	d := &Dictionary{
		byID:    make(map[string]*location.Location, len(locations)),
		byLabel: make(map[string][]*location.Location),
	}
	for _, loc := range locations {
		d.byID[loc.ID()] = loc
	}
	for _, loc := range locations {
		for _, label := range loc.Labels() {
			d.byLabel[label] = append(d.byLabel[label], loc)
		}
	}
	// Deterministic order within a label bucket: by id. Loader insertion
	// order would otherwise leak whatever order the source file happened
	// to list records in.
	for label := range d.byLabel {
		locs := d.byLabel[label]
		sort.Slice(locs, func(i, j int) bool { return locs[i].ID() < locs[j].ID() })
	}
	return d
}

// Len returns the number of indexed locations.
func (d *Dictionary) Len() int { return len(d.byID) }

// GetByID returns the location for id (case-insensitive), or nil if
// absent.
func (d *Dictionary) GetByID(id string) *location.Location {
	return d.byID[strings.ToUpper(id)]
}

// GetByLabel returns every location matching label (case-insensitive),
// in deterministic (by-id) order, or nil if none match.
func (d *Dictionary) GetByLabel(label string) []*location.Location {
	locs := d.byLabel[strings.ToLower(label)]
	if len(locs) == 0 {
		return nil
	}
	return locs
}

// RequireByID returns the location for id, failing with
// LocationNotFoundError when absent. Used only where a dictionary
// invariant guarantees presence — walking a location's ParentsIDs, which
// must always resolve in a well-formed dictionary.
func (d *Dictionary) RequireByID(id string) (*location.Location, error) {
	loc := d.GetByID(id)
	if loc == nil {
		return nil, &geoerr.LocationNotFoundError{ID: id}
	}
	return loc, nil
}
