package engine

import (
	"sort"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/gazetteer"
	"github.com/andreiashu/geodisambig/internal/geoerr"
	"github.com/andreiashu/geodisambig/location"
)

// coordinateMap indexes every normalized entity name to the coordinate
// groups (spec §3.2's "appear together" sets) it participates in.
type coordinateMap map[string][][]string

func buildCoordinateMap(groups [][]string) coordinateMap {
	m := make(coordinateMap)
	for _, g := range groups {
		norm := make([]string, len(g))
		for i, n := range g {
			norm[i] = candidate.NormalizeName(n)
		}
		for _, n := range norm {
			m[n] = append(m[n], norm)
		}
	}
	return m
}

// propagateBoosts runs the two score-propagation passes of spec §4.6, in
// the required order: parent boosts first, then sibling ("brother")
// boosts. Both passes iterate the working map in sorted-id order so that
// boost application is reproducible run to run.
func propagateBoosts(working map[string]*extloc.ExtendedLocation, dict *gazetteer.Dictionary, addingEntities map[string]bool, coordGroups [][]string) error {
	if err := boostByParents(working, dict, addingEntities); err != nil {
		return err
	}
	boostByBrothers(working, buildCoordinateMap(coordGroups))
	return nil
}

// boostByParents implements the parent-boost pass. For every working
// extended location L and every one of its parent ids (sorted, for
// determinism): if the parent is itself a working extended location and
// is "influential" (AdminArea1, AdminArea2, or a Country whose child is
// not already inside an admin-area-2), L and its parent boost each other
// mutually, reading and writing the shared boost bookkeeping so the
// later sibling pass can reconcile against it. If the parent is not a
// working extended location, L instead gets a flat per-label boost from
// any adding-entity label the parent carries.
func boostByParents(working map[string]*extloc.ExtendedLocation, dict *gazetteer.Dictionary, addingEntities map[string]bool) error {
	for _, id := range sortedKeys(working) {
		L := working[id]
		parentIDs := append([]string(nil), L.Location.ParentsIDs()...)
		sort.Strings(parentIDs)

		for _, pid := range parentIDs {
			if P, ok := working[pid]; ok {
				if !isInfluentialParent(P.Location, L.Location) {
					continue
				}
				if err := assertIsParent(L, P); err != nil {
					return err
				}
				shared := L.IntersectEntityNames(P)

				boostToL := applyBoost(P.EntriesExcept(shared), L.Boost.Parents, []map[string]float64{L.Boost.Children})
				L.Score += 1.0 * boostToL

				boostToP := applyBoost(L.EntriesExcept(shared), L.Boost.Children, []map[string]float64{L.Boost.Parents})
				P.Score += 0.5 * boostToP
				continue
			}

			parent, err := dict.RequireByID(pid)
			if err != nil {
				return err
			}
			for _, label := range parent.Labels() {
				if addingEntities[label] {
					L.Score += 0.333 * L.InitScore
				}
			}
		}
	}
	return nil
}

// isInfluentialParent reports whether parent is close enough in the
// hierarchy to meaningfully boost child: an admin area at either level,
// or a country whose child is not already nested under an admin-area-2
// (in which case the admin-area-2/1 boost already carries the signal).
func isInfluentialParent(parent, child *location.Location) bool {
	switch parent.Type() {
	case location.AdminArea1, location.AdminArea2:
		return true
	case location.Country:
		return !child.IsInsideAdminArea2()
	default:
		return false
	}
}

// assertIsParent defends the precondition spec §7's InvalidParent error
// describes: P must actually be one of L's parents. Unreachable through
// boostByParents' own call site (pid always comes from
// L.Location.ParentsIDs()), but kept as an explicit check rather than a
// silent assumption, since the error exists precisely for this
// invariant.
func assertIsParent(L, P *extloc.ExtendedLocation) error {
	for _, pid := range L.Location.ParentsIDs() {
		if pid == P.Location.ID() {
			return nil
		}
	}
	return &geoerr.InvalidParentError{ChildID: L.Location.ID(), ParentID: P.Location.ID()}
}

// boostByBrothers implements the sibling-boost pass. For every working
// extended location L and every sibling present in the working map, B's
// entity entries split into a coordinate subset (a coord-group match
// against one of L's own entities) and a non-coordinate subset, each
// boosted separately and at different rates — a coordinate match (spec
// §3.2: entities known to appear together) carries more weight than an
// incidental shared sibling mention — both reconciling against the
// parent/child boost slots so nothing already counted there is
// double-counted.
func boostByBrothers(working map[string]*extloc.ExtendedLocation, coordMap coordinateMap) {
	for _, id := range sortedKeys(working) {
		L := working[id]
		for _, bid := range siblingIDsOf(L, working) {
			B := working[bid]
			shared := L.IntersectEntityNames(B)
			coord := coordNamesOf(B, L, coordMap)

			nonCoordExclude := union(shared, coord)
			boostNonCoord := applyBoost(B.EntriesExcept(nonCoordExclude), L.Boost.Brothers, []map[string]float64{L.Boost.Children, L.Boost.Parents})
			L.Score += 0.5 * boostNonCoord

			coordExclude := union(shared, complement(B, coord))
			boostCoord := applyBoost(B.EntriesExcept(coordExclude), L.Boost.Brothers, []map[string]float64{L.Boost.Children, L.Boost.Parents})
			L.Score += 1.0 * boostCoord
		}
	}
}

// applyBoost implements the shared boost formula (spec §4.6): for each
// entry e in entries, average e's own score with whatever value each of
// relatives already recorded for e's name (counting only relatives that
// have recorded one), write that average into self[e.Name] (the slot
// this pass owns), and return the maximum boost produced — the value the
// caller adds to its own running score.
func applyBoost(entries []extloc.Entry, self map[string]float64, relatives []map[string]float64) float64 {
	var final float64
	for _, e := range entries {
		sum := e.Score
		count := 1
		for _, rel := range relatives {
			if v, ok := rel[e.Name]; ok {
				sum += v
				count++
			}
		}
		boost := sum / float64(count)
		self[e.Name] = boost
		if boost > final {
			final = boost
		}
	}
	return final
}

func sortedKeys(working map[string]*extloc.ExtendedLocation) []string {
	keys := make([]string, 0, len(working))
	for k := range working {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// areBrothers implements the spec §4.6 sibling predicate: same type,
// distinct locations, and either sharing an immediate parent or (for
// cities only) sharing a country and a subType.
func areBrothers(a, b *location.Location) bool {
	if a.Type() != b.Type() || a.ID() == b.ID() {
		return false
	}
	if pa, oka := a.ImmediateParentID(); oka {
		if pb, okb := b.ImmediateParentID(); okb && pa == pb {
			return true
		}
	}
	if a.Type() == location.City {
		ca, cb := a.CountryID(), b.CountryID()
		if ca != nil && cb != nil && *ca == *cb && a.SubType() == b.SubType() {
			return true
		}
	}
	return false
}

func siblingIDsOf(L *extloc.ExtendedLocation, working map[string]*extloc.ExtendedLocation) []string {
	var out []string
	for _, id := range sortedKeys(working) {
		if id == L.Location.ID() {
			continue
		}
		if areBrothers(L.Location, working[id].Location) {
			out = append(out, id)
		}
	}
	return out
}

// coordNamesOf returns the subset of B's entity names that form a
// coordinate-group match with at least one of L's entity names — the
// coord(B) set of spec §4.6's sibling-boost rule.
func coordNamesOf(B, L *extloc.ExtendedLocation, coordMap coordinateMap) map[string]bool {
	out := make(map[string]bool)
	for _, name := range B.EntityNames() {
		for _, group := range coordMap[name] {
			matched := false
			for _, other := range group {
				if other != name && L.HasEntityNamed(other) {
					matched = true
					break
				}
			}
			if matched {
				out[name] = true
				break
			}
		}
	}
	return out
}

func union(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

// complement returns B's entity names not in coord, used to build the
// coordinate pass's exclusion set (everything except the coord matches
// themselves).
func complement(B *extloc.ExtendedLocation, coord map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, n := range B.EntityNames() {
		if !coord[n] {
			out[n] = true
		}
	}
	return out
}
