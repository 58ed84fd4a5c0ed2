package hierid

import "strings"

// DominanceKey is the per-location input to the cross-type tie-break
// ladder used by selection (spec §4.7) and final ranking (spec §9).
//
// bigCity/littleCity is not a type the id algebra derives on its own —
// the spec's dominance ladder names it directly ("BigCity > AdminArea1")
// without defining the split. We resolve it the same way a capital or a
// high-population city reads in every gazetteer this module's teacher and
// its neighbors consume: a City counts as "big" if it is flagged capital
// or its population clears BigCityPopulation. See location.IsBigCity,
// which is the only caller expected to set this field — DESIGN.md records
// the choice and the threshold as an explicit open-question resolution.
type DominanceKey struct {
	Type       Type
	IsBigCity  bool // only consulted when Type == City
	Population *int // nil compares as smaller than any value
	ID         string
}

// rank buckets a DominanceKey onto the ladder spelled out in spec §4.1:
//
//	BigCity > AdminArea1
//	{Country, AdminArea1, BigCity} > LittleCity
//	Country > AdminArea1
//	{Country, BigCity} vs {Country, BigCity}: population breaks ties
//
// Country and BigCity share a rank and are disambiguated by population.
// Continent, Region and AdminArea2 are not named by the spec's ladder;
// they are slotted in at the natural points the named ladder leaves for
// them — broader containment outranks narrower, and AdminArea2 sits
// between AdminArea1 and City the same way it sits in the id itself.
func rank(k DominanceKey) int {
	switch {
	case k.Type == Continent:
		return 0
	case k.Type == Region:
		return 1
	case k.Type == Country:
		return 2
	case k.Type == City && k.IsBigCity:
		return 2
	case k.Type == AdminArea1:
		return 3
	case k.Type == AdminArea2:
		return 4
	case k.Type == City: // little city
		return 5
	default:
		return 6
	}
}

// Compare returns a negative number if a is more dominant (should sort
// first), a positive number if b is, and zero only when a and b are the
// same location id. The final id comparison is not part of the spec's
// rule but is required to make the overall ordering a strict total order
// (spec §8: "the returned list is sorted strictly by the §4.1
// comparator"), since two distinct locations can otherwise tie on every
// named criterion.
func Compare(a, b DominanceKey) int {
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra - rb
	}
	if c := comparePopulation(a.Population, b.Population); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// comparePopulation returns negative when a's population dominates
// (i.e. is larger — "larger population wins"), treating a nil
// population as smaller than any concrete value.
func comparePopulation(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1 // a smaller => b wins => a sorts after b
	case b == nil:
		return -1
	case *a == *b:
		return 0
	case *a > *b:
		return -1
	default:
		return 1
	}
}
