package engine

import (
	"sort"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/gazetteer"
	"github.com/andreiashu/geodisambig/location"
)

// accum collects, for one gazetteer location, every candidate entity
// whose label lookup produced it — the grouping spec §4.3 performs
// before an ExtendedLocation is built.
type accum struct {
	loc         *location.Location
	originators map[string]candidate.Entity
}

// expand runs candidate expansion (spec §4.3): every non-empty candidate
// entity is looked up by its normalized name against every label index
// in the dictionary, and every location any candidate resolves to
// becomes one working ExtendedLocation, keyed by location id.
func expand(dict *gazetteer.Dictionary, candidates []candidate.Entity) (map[string]*extloc.ExtendedLocation, error) {
	accs := make(map[string]*accum)
	for _, c := range candidates {
		if c.IsEmpty() {
			continue
		}
		for _, loc := range dict.GetByLabel(c.NormName()) {
			a, ok := accs[loc.ID()]
			if !ok {
				a = &accum{loc: loc, originators: make(map[string]candidate.Entity)}
				accs[loc.ID()] = a
			}
			a.originators[c.NormName()] = c
		}
	}

	working := make(map[string]*extloc.ExtendedLocation, len(accs))
	for id, a := range accs {
		parents := make([]*location.Location, 0, len(a.loc.ParentsIDs()))
		for _, pid := range a.loc.ParentsIDs() {
			p, err := dict.RequireByID(pid)
			if err != nil {
				return nil, err
			}
			parents = append(parents, p)
		}

		names := make([]string, 0, len(a.originators))
		for n := range a.originators {
			names = append(names, n)
		}
		sort.Strings(names)
		originators := make([]candidate.Entity, 0, len(names))
		for _, n := range names {
			originators = append(originators, a.originators[n])
		}

		working[id] = extloc.New(a.loc, parents, originators)
	}
	return working, nil
}
