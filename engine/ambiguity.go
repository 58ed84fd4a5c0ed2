package engine

import (
	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/extloc"
)

// resolveAmbiguity runs ambiguity resolution (spec §4.4) once, in place,
// over the working map. Groups are processed in input order; within a
// group, the first name (in the group's own order) that currently
// labels at least one surviving extended location is the group's
// winner, and every name after it in that same group is deleted: its
// initScore is damped on every extended location that still carries it,
// and the entity itself is removed from those extended locations.
// Extended locations left with no candidate entities are pruned once
// every group has been processed.
func resolveAmbiguity(working map[string]*extloc.ExtendedLocation, groups [][]string, damping float64) {
	for _, group := range groups {
		winner := -1
		for i, raw := range group {
			if hasSurvivor(working, candidate.NormalizeName(raw)) {
				winner = i
				break
			}
		}
		if winner < 0 {
			continue
		}
		for i := winner + 1; i < len(group); i++ {
			deleteEntity(working, candidate.NormalizeName(group[i]), damping)
		}
	}
	pruneEmpty(working)
}

func hasSurvivor(working map[string]*extloc.ExtendedLocation, name string) bool {
	for _, el := range working {
		if el.HasEntityNamed(name) {
			return true
		}
	}
	return false
}

func deleteEntity(working map[string]*extloc.ExtendedLocation, name string, damping float64) {
	for _, el := range working {
		if el.HasEntityNamed(name) {
			el.InitScore *= damping
			el.RemoveEntity(name)
		}
	}
}

func pruneEmpty(working map[string]*extloc.ExtendedLocation) {
	for id, el := range working {
		if el.IsEmpty() {
			delete(working, id)
		}
	}
}
