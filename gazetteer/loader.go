package gazetteer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"

	"github.com/andreiashu/geodisambig/location"
)

// excludedSubTypes are dropped by the loader, never present in a built
// Dictionary (spec §4.2).
var excludedSubTypes = map[string]bool{
	"hamlet":  true,
	"village": true,
}

// maxLabelEditDistance caps the Levenshtein distance used for the
// near-duplicate-label warning, the same bounded-scan discipline the
// teacher applies to its own fuzzy city matching (maxFuzzyDistance).
// Kept small because the check runs at load time against every label
// seen so far (the same-parent filter applies only after the distance is
// computed), not per query.
const maxLabelEditDistance = 2

// rawRecord is the on-disk JSON shape of one gazetteer line.
type rawRecord struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	UNLOCODE     string              `json:"unlocode,omitempty"`
	CountryCode  string              `json:"countryCode,omitempty"`
	SubType      string              `json:"subType,omitempty"`
	Translations map[string]string   `json:"translations,omitempty"`
	OtherNames   []string            `json:"otherNames,omitempty"`
	Demonym      string              `json:"demonym,omitempty"`
	Lat          *float64            `json:"lat,omitempty"`
	Lon          *float64            `json:"lon,omitempty"`
	Borders      []string            `json:"borders,omitempty"`
	Capital      *bool               `json:"capital,omitempty"`
	Area         *int                `json:"area,omitempty"`
	Population   *int                `json:"population,omitempty"`
	Languages    []string            `json:"languages,omitempty"`
	AltAdmin     []rawAdminDivision  `json:"altAdminDivisions,omitempty"`
}

type rawAdminDivision struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Config holds Loader options, following the teacher's GeobedConfig +
// functional-option shape (WithDataDir/WithCacheDir).
type Config struct {
	SourcePath string
	Strict     bool // turn loader warnings into hard failures
	Logger     *logrus.Logger
}

// Option configures a Loader.
type Option func(*Config)

// WithSourcePath sets the line-delimited JSON gazetteer file to read.
func WithSourcePath(path string) Option {
	return func(c *Config) { c.SourcePath = path }
}

// WithStrict turns malformed records (unparseable JSON, invalid id or
// name) into hard errors instead of skip-and-log. Near-duplicate label
// warnings are logged in either mode and never fail the load.
func WithStrict(strict bool) Option {
	return func(c *Config) { c.Strict = strict }
}

// WithLogger overrides the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Loader builds a Dictionary from a line-delimited JSON gazetteer file.
// This is the "parsing the line-delimited JSON file of raw location
// records, validating/filtering records, and building the in-memory
// dictionary" collaborator spec §1 assumes but leaves unspecified.
type Loader struct {
	cfg Config
}

// NewLoader constructs a Loader.
func NewLoader(opts ...Option) *Loader {
	cfg := Config{Logger: logrus.New()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{cfg: cfg}
}

// Stats summarizes one Load call.
type Stats struct {
	Lines            int
	Loaded           int
	SkippedMalformed int
	SkippedExcluded  int
	NearDuplicates   int
}

// Load reads the configured source file and returns a built Dictionary.
func (l *Loader) Load() (*Dictionary, Stats, error) {
	f, err := os.Open(l.cfg.SourcePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening gazetteer source: %w", err)
	}
	defer f.Close()
	return l.LoadFrom(f)
}

// LoadFrom reads line-delimited JSON records from r and returns a built
// Dictionary. Exposed separately from Load so tests can feed an
// in-memory reader.
func (l *Loader) LoadFrom(r io.Reader) (*Dictionary, Stats, error) {
	var stats Stats
	var locs []*location.Location
	byLabelSeen := make(map[string][]*location.Location) // for near-dup scan

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			if l.cfg.Strict {
				return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			stats.SkippedMalformed++
			l.cfg.Logger.WithFields(logrus.Fields{"line": stats.Lines, "error": err}).
				Warn("gazetteer: skipping unparseable record")
			continue
		}

		if raw.Name == "" || excludedSubTypes[strings.ToLower(raw.SubType)] {
			stats.SkippedExcluded++
			continue
		}

		rec := location.Record{
			ID:           raw.ID,
			Name:         raw.Name,
			UNLOCODE:     raw.UNLOCODE,
			CountryCode:  raw.CountryCode,
			SubType:      raw.SubType,
			Translations: raw.Translations,
			OtherNames:   raw.OtherNames,
			Demonym:      raw.Demonym,
			Borders:      raw.Borders,
			Capital:      raw.Capital,
			Area:         raw.Area,
			Population:   raw.Population,
			Languages:    raw.Languages,
		}
		if raw.Lat != nil && raw.Lon != nil {
			if coords, ok := location.NewCoordinates(*raw.Lat, *raw.Lon); ok {
				rec.Coordinates = &coords
			}
		}
		for _, a := range raw.AltAdmin {
			rec.AltAdmin = append(rec.AltAdmin, location.AdminDivision{
				Type: a.Type, Name: a.Name, Level: a.Level,
			})
		}

		loc, err := location.New(rec)
		if err != nil {
			if l.cfg.Strict {
				return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			stats.SkippedMalformed++
			l.cfg.Logger.WithFields(logrus.Fields{"line": stats.Lines, "error": err}).
				Warn("gazetteer: skipping invalid record")
			continue
		}

		l.checkNearDuplicates(loc, byLabelSeen, &stats)
		for _, label := range loc.Labels() {
			byLabelSeen[label] = append(byLabelSeen[label], loc)
		}

		locs = append(locs, loc)
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading gazetteer source: %w", err)
	}

	l.cfg.Logger.WithFields(logrus.Fields{
		"lines": stats.Lines, "loaded": stats.Loaded,
		"skippedMalformed": stats.SkippedMalformed, "skippedExcluded": stats.SkippedExcluded,
		"nearDuplicates": stats.NearDuplicates,
	}).Info("gazetteer: load complete")

	return New(locs), stats, nil
}

// checkNearDuplicates flags labels of loc that are a short edit distance
// from an already-seen label of a sibling record (same immediate parent),
// the loader-side use of Levenshtein distance described in SPEC_FULL.md
// §B.2. This never rejects or merges a record — it only logs, since
// deciding which of two near-duplicate spellings is canonical is a data
// curation call outside the scope of this loader.
func (l *Loader) checkNearDuplicates(loc *location.Location, seen map[string][]*location.Location, stats *Stats) {
	parentID, hasParent := loc.ImmediateParentID()
	if !hasParent {
		return
	}
	for _, label := range loc.Labels() {
		if len(label) <= 2 {
			continue // avoid noisy matches on short codes/abbreviations
		}
		for seenLabel, candidates := range seen {
			if seenLabel == label || len(seenLabel) <= 2 {
				continue
			}
			if levenshtein.ComputeDistance(label, seenLabel) > maxLabelEditDistance {
				continue
			}
			for _, other := range candidates {
				otherParentID, ok := other.ImmediateParentID()
				if !ok || otherParentID != parentID {
					continue
				}
				stats.NearDuplicates++
				l.cfg.Logger.WithFields(logrus.Fields{
					"label": label, "near": seenLabel,
					"id": loc.ID(), "other": other.ID(),
				}).Warn("gazetteer: near-duplicate label under same parent")
			}
		}
	}
}
