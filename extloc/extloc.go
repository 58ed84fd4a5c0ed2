// Package extloc implements ExtendedLocation (spec §3.3): the mutable
// working record that wraps a gazetteer Location with the scoring state
// the pipeline accumulates over one FindLocations call — candidate
// provenance, resolved parents, the evolving score, confidence, and the
// three-slot boost bookkeeping that keeps the parent/child/sibling boost
// passes (spec §4.6) from double-counting the same entity.
package extloc

import (
	"sort"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/location"
)

// Entry is a (name, score) pair produced by EntriesExcept — the input
// shape the boost formula (spec §4.6) consumes.
type Entry struct {
	Name  string
	Score float64
}

// Boost is the three-slot per-entity boost record (spec §3.3). Each slot
// is written by exactly one relation (parent, child, sibling/"brother")
// and read back by the others to reconcile against — see
// engine/boost.go.
type Boost struct {
	Parents  map[string]float64
	Children map[string]float64
	Brothers map[string]float64
}

func newBoost() Boost {
	return Boost{
		Parents:  make(map[string]float64),
		Children: make(map[string]float64),
		Brothers: make(map[string]float64),
	}
}

// ExtendedLocation is the engine's mutable per-location working record.
// Two ExtendedLocations with the same Location id are considered
// identical (spec §3.3); the engine's working map is keyed that way.
type ExtendedLocation struct {
	Location *location.Location
	Parents  []*location.Location

	candidates map[string]candidate.Entity // keyed by NormName

	InitScore float64
	Score     float64

	Confidence          float64
	ScoreDeviation      float64
	ConfidenceDeviation float64
	CountryStrength     float64

	AssignedMentions []string

	Boost Boost
}

// New constructs an ExtendedLocation for loc, with parents already
// resolved from the dictionary and originators the candidate entities
// whose lookup produced loc. InitScore is the mean of the originators'
// scores (spec §4.3).
func New(loc *location.Location, parents []*location.Location, originators []candidate.Entity) *ExtendedLocation {
	el := &ExtendedLocation{
		Location:   loc,
		Parents:    parents,
		candidates: make(map[string]candidate.Entity, len(originators)),
		Boost:      newBoost(),
	}
	var sum float64
	for _, e := range originators {
		el.candidates[e.NormName()] = e
		sum += e.Score
	}
	if len(originators) > 0 {
		el.InitScore = sum / float64(len(originators))
	}
	el.Score = el.InitScore
	return el
}

// CandidateEntities returns the current set of originating candidate
// entities, in deterministic (normName-sorted) order.
func (el *ExtendedLocation) CandidateEntities() []candidate.Entity {
	names := el.EntityNames()
	out := make([]candidate.Entity, 0, len(names))
	for _, n := range names {
		out = append(out, el.candidates[n])
	}
	return out
}

// EntityNames returns the normalized names of the current candidate
// entities, sorted for deterministic iteration.
func (el *ExtendedLocation) EntityNames() []string {
	names := make([]string, 0, len(el.candidates))
	for n := range el.candidates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HasEntityNamed reports whether normName is currently a candidate
// entity of this location.
func (el *ExtendedLocation) HasEntityNamed(normName string) bool {
	_, ok := el.candidates[normName]
	return ok
}

// RemoveEntity drops normName from the candidate set, e.g. when
// ambiguity resolution discards it (spec §4.4).
func (el *ExtendedLocation) RemoveEntity(normName string) {
	delete(el.candidates, normName)
}

// IsEmpty reports whether every originating candidate entity has been
// removed — such an extended location is pruned after ambiguity
// resolution (spec §4.4).
func (el *ExtendedLocation) IsEmpty() bool { return len(el.candidates) == 0 }

// EntriesExcept returns this location's (name, score) entries for every
// candidate entity not in exclude, sorted by name — the E set the spec's
// boost formula (§4.6) is defined over.
func (el *ExtendedLocation) EntriesExcept(exclude map[string]bool) []Entry {
	names := el.EntityNames()
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		if exclude[n] {
			continue
		}
		out = append(out, Entry{Name: n, Score: el.candidates[n].Score})
	}
	return out
}

// IntersectEntityNames returns the set of entity names shared between el
// and other — the "I" set used throughout spec §4.6 (excluded from
// mutual parent/brother boosts so the shared mention can't boost its own
// source twice).
func (el *ExtendedLocation) IntersectEntityNames(other *ExtendedLocation) map[string]bool {
	out := make(map[string]bool)
	for _, n := range el.EntityNames() {
		if other.HasEntityNamed(n) {
			out[n] = true
		}
	}
	return out
}
