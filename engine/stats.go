package engine

import (
	"math"
	"sort"

	"github.com/andreiashu/geodisambig/extloc"
)

// Distribution summarizes one numeric series across the final selected
// locations (spec §4.9/§6.3): its mean, variance, standard deviation,
// and the standard deviation expressed as a fraction of the mean.
type Distribution struct {
	Avg        float64
	Variance   float64
	StdDev     float64
	StdDevPerc float64
}

// Statistics is the summary spec §6.3 returns alongside the ranked
// locations: the score and confidence distributions across the final
// selected set.
type Statistics struct {
	Score      Distribution
	Confidence Distribution
}

// finalize implements spec §4.9: normalize every selected location's
// score to a probability (dividing by the sum across the set), compute
// per-location score/confidence deviations from the set's means, derive
// each location's countryStrength as the mean score of every selected
// location sharing its country, and sort the set by descending score,
// ties broken by the §4.1 dominance comparator (moreProbable).
func finalize(best []*extloc.ExtendedLocation) Statistics {
	var sumScore float64
	for _, L := range best {
		sumScore += L.Score
	}
	if sumScore > 0 {
		for _, L := range best {
			L.Score /= sumScore
		}
	}

	scores := make([]float64, len(best))
	confidences := make([]float64, len(best))
	for i, L := range best {
		scores[i] = L.Score
		confidences[i] = L.Confidence
	}
	scoreDist := distributionOf(scores)
	confDist := distributionOf(confidences)

	for _, L := range best {
		L.ScoreDeviation = L.Score - scoreDist.Avg
		L.ConfidenceDeviation = L.Confidence - confDist.Avg
	}

	applyCountryStrength(best)

	sort.SliceStable(best, func(i, j int) bool { return moreProbable(best[i], best[j]) })

	return Statistics{Score: scoreDist, Confidence: confDist}
}

func distributionOf(xs []float64) Distribution {
	n := float64(len(xs))
	if n == 0 {
		return Distribution{}
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	avg := sum / n

	var sqSum float64
	for _, x := range xs {
		d := x - avg
		sqSum += d * d
	}
	variance := sqSum / n
	stdDev := math.Sqrt(variance)

	var stdDevPerc float64
	if avg != 0 {
		stdDevPerc = stdDev / avg
	}
	return Distribution{Avg: avg, Variance: variance, StdDev: stdDev, StdDevPerc: stdDevPerc}
}

// applyCountryStrength groups selected locations by effective country —
// a location's own country id if it has one, or itself if it is a
// country — and assigns each member the mean score of its group.
func applyCountryStrength(best []*extloc.ExtendedLocation) {
	groups := make(map[string][]*extloc.ExtendedLocation)
	for _, L := range best {
		switch {
		case L.Location.IsInsideCountry():
			groups[*L.Location.CountryID()] = append(groups[*L.Location.CountryID()], L)
		case L.Location.IsCountry():
			groups[L.Location.ID()] = append(groups[L.Location.ID()], L)
		}
	}
	for _, members := range groups {
		var sum float64
		for _, m := range members {
			sum += m.Score
		}
		mean := sum / float64(len(members))
		for _, m := range members {
			m.CountryStrength = mean
		}
	}
}
