// Package candidate implements CandidateEntity (spec §3.2): a scored
// mention string already extracted by an upstream NER step. Identity is
// by normalized name only, mirroring the value-type-with-derived-field
// shape the teacher uses for GeobedCity (a plain struct plus one cheap
// derived accessor).
package candidate

import "strings"

// Entity is one candidate mention with its semantic "is this a
// location?" score in [0,1].
type Entity struct {
	Name  string
	Score float64

	normName string
}

// New builds an Entity, computing and caching its normalized name
// (lower-cased, trimmed). A candidate whose name is empty after
// normalization is not an error — spec §7 treats it as "matches nothing,
// silently dropped" — callers should check IsEmpty before using it as a
// map key.
func New(name string, score float64) Entity {
	return Entity{
		Name:     name,
		Score:    score,
		normName: strings.ToLower(strings.TrimSpace(name)),
	}
}

// NormName returns the normalized identity used for equality, hashing,
// and map keys throughout the engine.
func (e Entity) NormName() string { return e.normName }

// IsEmpty reports whether this candidate normalizes to nothing and
// should be dropped before candidate expansion.
func (e Entity) IsEmpty() bool { return e.normName == "" }

// NormalizeName applies the same normalization New uses for NormName:
// lower-case, trim. Exposed so callers normalizing caller-supplied
// ambiguity/coordinate group members match candidate identity exactly.
// Idempotent: NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
