package engine

import (
	"math"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/gazetteer"
	"github.com/andreiashu/geodisambig/location"
)

func Test(t *testing.T) { TestingT(t) }

type EngineSuite struct{}

var _ = Suite(&EngineSuite{})

func mustLoc(c *C, rec location.Record) *location.Location {
	loc, err := location.New(rec)
	c.Assert(err, IsNil)
	return loc
}

// buildUSScenario sets up a small, hand-checkable dictionary: one
// continent, one country (with three NER spellings that must collapse
// to one entity via ambiguity resolution), one state whose name never
// appears as its own candidate (so it is only reachable as an "adding
// entity" fallback), and two sibling cities within that state.
func (s *EngineSuite) buildUSScenario(c *C) *gazetteer.Dictionary {
	continent := mustLoc(c, location.Record{ID: "6000000000000", Name: "North America"})
	usa := mustLoc(c, location.Record{
		ID:         "6118000000000",
		Name:       "United States of America",
		OtherNames: []string{"United States", "America"},
	})
	pennsylvania := mustLoc(c, location.Record{ID: "611800B000000", Name: "Pennsylvania"})
	philadelphia := mustLoc(c, location.Record{ID: "611800B000001", Name: "Philadelphia", SubType: "city"})
	pittsburgh := mustLoc(c, location.Record{ID: "611800B000002", Name: "Pittsburgh", SubType: "city"})

	return gazetteer.New([]*location.Location{continent, usa, pennsylvania, philadelphia, pittsburgh})
}

func (s *EngineSuite) TestDisambiguateUSCities(c *C) {
	dict := s.buildUSScenario(c)

	tokens := []string{
		"we", "visited", "philadelphia", "and", "pittsburgh",
		"in", "pennsylvania", "as", "part", "of", "a", "tour",
		"of", "the", "united", "states", "of", "america",
	}
	candidates := []candidate.Entity{
		candidate.New("United States of America", 0.9),
		candidate.New("United States", 0.6),
		candidate.New("America", 0.3),
		candidate.New("Philadelphia", 0.8),
		candidate.New("Pittsburgh", 0.5),
	}
	ambiguityGroups := [][]string{
		{"united states of america", "united states", "america"},
	}

	eng := New()
	results, stats, err := eng.FindLocations(dict, tokens, candidates, nil, ambiguityGroups)
	c.Assert(err, IsNil)
	c.Assert(stats, Not(IsNil))
	c.Assert(results, HasLen, 3)

	byName := make(map[string]int)
	for i, L := range results {
		byName[L.Location.Name()] = i
	}
	_, hasUSA := byName["United States of America"]
	_, hasPhiladelphia := byName["Philadelphia"]
	_, hasPittsburgh := byName["Pittsburgh"]
	c.Assert(hasUSA, Equals, true)
	c.Assert(hasPhiladelphia, Equals, true)
	c.Assert(hasPittsburgh, Equals, true)

	usaResult := results[byName["United States of America"]]
	philResult := results[byName["Philadelphia"]]
	pittResult := results[byName["Pittsburgh"]]

	// Ambiguity resolution: only the first-listed spelling survives as a
	// candidate entity and the only assigned mention.
	c.Assert(usaResult.EntityNames(), DeepEquals, []string{"united states of america"})
	c.Assert(usaResult.AssignedMentions, DeepEquals, []string{"united states of america"})

	// Both cities outscore the country: each got a mutual parent boost
	// from the country, and an adding-entity boost from Pennsylvania
	// (never itself a candidate, only reachable via the orphan-parent
	// fallback), while the country only received the (smaller) 0.5-rate
	// child contribution.
	c.Assert(philResult.Score > usaResult.Score, Equals, true)
	c.Assert(pittResult.Score > usaResult.Score, Equals, true)

	// Philadelphia started with a higher candidate score than Pittsburgh
	// and both received symmetric boosts, so it should still lead.
	c.Assert(philResult.Score > pittResult.Score, Equals, true)

	// Final ordering must match score-descending (spec §4.9).
	c.Assert(results[0].Location.Name(), Equals, "Philadelphia")
	c.Assert(results[1].Location.Name(), Equals, "Pittsburgh")
	c.Assert(results[2].Location.Name(), Equals, "United States of America")

	// Scores are normalized to sum to 1 across the selected set, so their
	// mean is exactly 1/3 regardless of the boost arithmetic above.
	assertApprox(c, stats.Score.Avg, 1.0/3.0, 1e-9)

	// Confidence calibration, worked out by hand for this scenario:
	//
	// Philadelphia/Pittsburgh: selected-parent ratio 1/1 (USA, the only
	// selected country) + 0 sub-levels + sibling ratio 1/1 (each other)
	// + relative ratio 1/2 (the other city, of the two locations inside
	// a country) + 0 borders (not a country) = 2.5, /5, cube-rooted.
	wantCityConfidence := math.Cbrt(2.5 / 5.0)
	assertApprox(c, philResult.Confidence, wantCityConfidence, 1e-9)
	assertApprox(c, pittResult.Confidence, wantCityConfidence, 1e-9)

	// USA: 0 selected parents + sub-level ratio 2/2 (both cities list it
	// among their ParentsIDs) + 0 siblings (only selected country) + 0
	// relatives (a country is never "inside" a country) + 0 borders (no
	// other selected country) = 1.0, /5, cube-rooted.
	wantCountryConfidence := math.Cbrt(1.0 / 5.0)
	assertApprox(c, usaResult.Confidence, wantCountryConfidence, 1e-9)

	// Country strength: the two cities' country id is the USA's own id, so
	// all three form one effective-country group and each reports the
	// group's mean normalized score, 1/3.
	assertApprox(c, philResult.CountryStrength, pittResult.CountryStrength, 1e-9)
	assertApprox(c, usaResult.CountryStrength, 1.0/3.0, 1e-9)

	// Deviations are measured from the set's own mean, so they must sum
	// to (approximately) zero.
	sumScoreDev := philResult.ScoreDeviation + pittResult.ScoreDeviation + usaResult.ScoreDeviation
	assertApprox(c, sumScoreDev, 0, 1e-9)
}

func (s *EngineSuite) TestZeroCandidatesYieldsEmptyResultNoStats(c *C) {
	dict := s.buildUSScenario(c)
	results, stats, err := New().FindLocations(dict, nil, nil, nil, nil)
	c.Assert(err, IsNil)
	c.Assert(results, IsNil)
	c.Assert(stats, IsNil)
}

func (s *EngineSuite) TestBlankOnlyCandidatesAreDroppedSilently(c *C) {
	dict := s.buildUSScenario(c)
	candidates := []candidate.Entity{candidate.New("   ", 0.9)}
	results, stats, err := New().FindLocations(dict, nil, candidates, nil, nil)
	c.Assert(err, IsNil)
	c.Assert(results, IsNil)
	c.Assert(stats, IsNil)
}

func (s *EngineSuite) TestAmbiguityWithNoSurvivorIsANoOp(c *C) {
	dict := s.buildUSScenario(c)
	candidates := []candidate.Entity{candidate.New("Philadelphia", 0.8)}
	// Neither name in this group ever matches a location, so there is no
	// winner and the group must not touch the unrelated "philadelphia" entry.
	groups := [][]string{{"atlantis", "el dorado"}}
	results, _, err := New().FindLocations(dict, nil, candidates, nil, groups)
	c.Assert(err, IsNil)
	c.Assert(results, HasLen, 1)
	c.Assert(results[0].EntityNames(), DeepEquals, []string{"philadelphia"})
}

func assertApprox(c *C, got, want, tol float64) {
	if diff := got - want; diff > tol || diff < -tol {
		c.Fatalf("got %v, want %v (tolerance %v)", got, want, tol)
	}
}
