// Package engine implements the disambiguation pipeline (spec §2/§4/§6.3):
// candidate expansion, ambiguity resolution, adding-entity detection,
// score propagation, selection, confidence calibration and final
// normalization, wired together behind one entry point, FindLocations.
//
// The Engine type follows the teacher's functional-options shape
// (GeobedConfig/Option/WithDataDir) and its injected-logger convention
// (*logrus.Logger, defaulting to logrus.New()).
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/gazetteer"
)

// defaultAmbiguityDamping is the per-deletion score multiplier spec
// §4.4 applies to an extended location that loses a candidate entity to
// ambiguity resolution.
const defaultAmbiguityDamping = 0.9

// Config holds Engine options.
type Config struct {
	Logger           *logrus.Logger
	AmbiguityDamping float64
}

// Option configures an Engine.
type Option func(*Config)

// WithLogger overrides the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithDamping overrides the per-deletion ambiguity damping factor
// (spec §4.4 names 0.9 as the default).
func WithDamping(d float64) Option {
	return func(c *Config) { c.AmbiguityDamping = d }
}

// Engine runs the disambiguation pipeline against a Dictionary.
type Engine struct {
	cfg Config
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	cfg := Config{Logger: logrus.New(), AmbiguityDamping: defaultAmbiguityDamping}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

// FindLocations runs the full pipeline (spec §6.3): candidate expansion,
// ambiguity resolution, adding-entity detection, parent/sibling score
// propagation, selection of the best backing location per mention,
// confidence calibration, and final normalization and sorting.
//
// textTokens is the already-tokenized input text (tokenization itself is
// out of scope — spec §1). candidateEntities are the pre-extracted
// mention scores (spec §3.2). coordinateGroups and ambiguityGroups are
// the pre-computed relations spec §3.2/§4.4 assume as external input.
//
// A candidateEntities slice with no non-empty entries returns a nil
// slice and nil Statistics: spec §4.3 treats zero candidates as an
// empty-result path, not an error.
func (e *Engine) FindLocations(
	dict *gazetteer.Dictionary,
	textTokens []string,
	candidateEntities []candidate.Entity,
	coordinateGroups [][]string,
	ambiguityGroups [][]string,
) ([]*extloc.ExtendedLocation, *Statistics, error) {
	if !hasNonEmptyCandidate(candidateEntities) {
		return nil, nil, nil
	}

	working, err := expand(dict, candidateEntities)
	if err != nil {
		return nil, nil, err
	}
	e.cfg.Logger.WithField("locations", len(working)).Debug("engine: candidate expansion complete")

	resolveAmbiguity(working, ambiguityGroups, e.cfg.AmbiguityDamping)
	e.cfg.Logger.WithField("locations", len(working)).Debug("engine: ambiguity resolution complete")

	addingEntities, err := findAddingEntities(dict, working, textTokens)
	if err != nil {
		return nil, nil, err
	}
	e.cfg.Logger.WithField("addingEntities", len(addingEntities)).Debug("engine: adding-entity detection complete")

	if err := propagateBoosts(working, dict, addingEntities, coordinateGroups); err != nil {
		return nil, nil, err
	}
	e.cfg.Logger.Debug("engine: score propagation complete")

	best := attachAssignedMentions(selectBest(working))
	if len(best) == 0 {
		return best, nil, nil
	}

	calibrateConfidence(best)
	stats := finalize(best)
	e.cfg.Logger.WithField("selected", len(best)).Info("engine: disambiguation complete")

	return best, &stats, nil
}

func hasNonEmptyCandidate(candidates []candidate.Entity) bool {
	for _, c := range candidates {
		if !c.IsEmpty() {
			return true
		}
	}
	return false
}
