package engine

import (
	"sort"

	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/internal/hierid"
)

// selectBest implements spec §4.7: for every candidate entity across the
// whole working set, the single extended location backing it is the
// "most probable" one — the highest score, ties broken by the §4.1
// dominance order. Iteration is in sorted-id order so an exact score/
// dominance tie (impossible under hierid.Compare's final id tie-break,
// but kept anyway for robustness) resolves the same way every run.
func selectBest(working map[string]*extloc.ExtendedLocation) map[string]*extloc.ExtendedLocation {
	best := make(map[string]*extloc.ExtendedLocation)
	for _, id := range sortedKeys(working) {
		L := working[id]
		for _, name := range L.EntityNames() {
			if incumbent, ok := best[name]; !ok || moreProbable(L, incumbent) {
				best[name] = L
			}
		}
	}
	return best
}

// moreProbable reports whether a should be preferred over b as the
// backing location for a mention: strictly higher score, or equal score
// broken by the §4.1 dominance comparator.
func moreProbable(a, b *extloc.ExtendedLocation) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return hierid.Compare(a.Location.DominanceKey(), b.Location.DominanceKey()) < 0
}

// attachAssignedMentions collapses the mention->location map produced by
// selectBest into the distinct set of surviving locations (spec §4.7: a
// single location can back several mentions), recording on each the
// sorted list of mention keys that chose it.
func attachAssignedMentions(best map[string]*extloc.ExtendedLocation) []*extloc.ExtendedLocation {
	mentions := make(map[string][]string)
	for mention, L := range best {
		mentions[L.Location.ID()] = append(mentions[L.Location.ID()], mention)
	}

	mentionNames := make([]string, 0, len(best))
	for m := range best {
		mentionNames = append(mentionNames, m)
	}
	sort.Strings(mentionNames)

	seen := make(map[string]bool)
	var out []*extloc.ExtendedLocation
	for _, mention := range mentionNames {
		L := best[mention]
		if seen[L.Location.ID()] {
			continue
		}
		seen[L.Location.ID()] = true
		assigned := append([]string(nil), mentions[L.Location.ID()]...)
		sort.Strings(assigned)
		L.AssignedMentions = assigned
		out = append(out, L)
	}
	return out
}
