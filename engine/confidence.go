package engine

import (
	"math"

	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/location"
)

// calibrateConfidence implements spec §4.8: each selected location's
// confidence is the cube root of the mean of five ratios, each capturing
// how well-corroborated the location is by the rest of the selected set
// — by its own selected parents, by selected locations nested inside it,
// by selected siblings, by other selected relatives in the same country,
// and (countries only) by selected bordering countries.
func calibrateConfidence(best []*extloc.ExtendedLocation) {
	bestIDs := make(map[string]bool, len(best))
	countByType := make(map[location.Type]int)
	for _, L := range best {
		bestIDs[L.Location.ID()] = true
		countByType[L.Location.Type()]++
	}

	subLevelCount := make(map[string]int)
	subLevelTypes := make(map[string]map[location.Type]bool)
	for _, L := range best {
		for _, pid := range L.Location.ParentsIDs() {
			if !bestIDs[pid] {
				continue
			}
			subLevelCount[pid]++
			if subLevelTypes[pid] == nil {
				subLevelTypes[pid] = make(map[location.Type]bool)
			}
			subLevelTypes[pid][L.Location.Type()] = true
		}
	}

	for _, L := range best {
		var total float64
		id := L.Location.ID()

		// 1. Selected parents, as a share of every selected location of
		// the same type(s) as those parents.
		var selectedParents int
		parentTypes := make(map[location.Type]bool)
		for _, p := range L.Parents {
			if bestIDs[p.ID()] {
				selectedParents++
				parentTypes[p.Type()] = true
			}
		}
		if denom := sumByType(countByType, parentTypes); denom > 0 {
			total += float64(selectedParents) / float64(denom)
		}

		// 2. Selected sub-levels nested inside L at any depth (every
		// selected location whose ParentsIDs contains L's id).
		if denom := sumByType(countByType, subLevelTypes[id]); denom > 0 {
			total += float64(subLevelCount[id]) / float64(denom)
		}

		// 3. Selected siblings.
		if sameType := countByType[L.Location.Type()]; sameType > 1 {
			var siblings int
			for _, M := range best {
				if M != L && areBrothers(L.Location, M.Location) {
					siblings++
				}
			}
			total += float64(siblings) / float64(sameType-1)
		}

		// 4. Other selected relatives (same country, distinct location).
		var possibleRelatives int
		for _, M := range best {
			if M.Location.IsInsideCountry() {
				possibleRelatives++
			}
		}
		if possibleRelatives > 0 {
			var relatives int
			for _, M := range best {
				if areRelatives(L, M) {
					relatives++
				}
			}
			total += float64(relatives) / float64(possibleRelatives)
		}

		// 5. Selected bordering countries (countries only).
		if L.Location.IsCountry() {
			if otherCountries := countByType[location.Country] - 1; otherCountries > 0 {
				var borders int
				for _, b := range L.Location.Borders() {
					if bestIDs[b] {
						borders++
					}
				}
				total += float64(borders) / float64(otherCountries)
			}
		}

		L.Confidence = math.Cbrt(total / 5.0)
	}
}

func sumByType(countByType map[location.Type]int, types map[location.Type]bool) int {
	var sum int
	for t := range types {
		sum += countByType[t]
	}
	return sum
}

// areRelatives implements the decision recorded in DESIGN.md for spec
// §4.8's "other relatives" contribution: two distinct selected locations
// both nested inside a country, sharing that country.
func areRelatives(a, b *extloc.ExtendedLocation) bool {
	if a.Location.ID() == b.Location.ID() {
		return false
	}
	if !a.Location.IsInsideCountry() || !b.Location.IsInsideCountry() {
		return false
	}
	ca, cb := a.Location.CountryID(), b.Location.CountryID()
	return ca != nil && cb != nil && *ca == *cb
}
