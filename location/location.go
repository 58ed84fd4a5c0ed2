// Package location implements the immutable gazetteer record (spec §3.1):
// a Location carries the raw attributes of one gazetteer entry plus a set
// of derived properties (type, labels, parent ids, containment flags)
// computed once at construction time and cached for the lifetime of the
// value, the same "derive on construction, expose a narrow accessor"
// discipline the teacher applies to GeobedCity's Country()/Region().
package location

import (
	"sort"
	"strings"

	"github.com/andreiashu/geodisambig/internal/hierid"
)

// Type is the location level, re-exported from the hierarchy algebra so
// callers never need to import internal/hierid directly.
type Type = hierid.Type

const (
	Continent  = hierid.Continent
	Region     = hierid.Region
	Country    = hierid.Country
	AdminArea2 = hierid.AdminArea2
	AdminArea1 = hierid.AdminArea1
	City       = hierid.City
)

// BigCityPopulation is the population a City must clear to count as
// "big" for the spec §4.1 dominance ladder when it is not flagged
// capital. See hierid.DominanceKey's doc comment and DESIGN.md for the
// rationale — the spec names the BigCity/LittleCity split without
// defining it.
const BigCityPopulation = 200_000

// AdminDivision is one alternative administrative division recorded
// against a location: a (type, name, level) tuple, e.g. ("borough",
// "Manhattan", 2).
type AdminDivision struct {
	Type  string
	Name  string
	Level int
}

// Record is the raw, unvalidated shape of one gazetteer entry — what a
// loader (spec's external collaborator) hands to New. Optional fields use
// pointers/zero-values exactly as spec §3.1 describes them.
type Record struct {
	ID           string
	Name         string
	UNLOCODE     string
	CountryCode  string
	SubType      string
	Translations map[string]string
	OtherNames   []string
	Demonym      string
	Coordinates  *Coordinates
	Borders      []string
	Capital      *bool
	Area         *int
	Population   *int
	Languages    []string
	AltAdmin     []AdminDivision
}

// Location is an immutable gazetteer record with its derived properties
// pre-computed. Zero value is not meaningful; construct with New.
type Location struct {
	id           string
	name         string
	unlocode     string
	countryCode  string
	subType      string
	translations map[string]string
	otherNames   []string
	demonym      string
	coordinates  *Coordinates
	borders      []string
	capital      *bool
	area         *int
	population   *int
	languages    []string
	altAdmin     []AdminDivision

	typ    Type
	labels []string
	labelSet map[string]struct{}

	parentsIDs []string

	isInsideContinent  bool
	isInsideRegion     bool
	isInsideCountry    bool
	isInsideAdminArea2 bool
	isInsideAdminArea1 bool

	continentID  *string
	regionID     *string
	countryID    *string
	adminArea2ID *string
	adminArea1ID *string
}

// New validates rec and constructs a Location, deriving and caching its
// type, labels, parent ids and containment flags. It never leaves a
// Location whose labels are empty or whose type is ambiguous.
func New(rec Record) (*Location, error) {
	id := strings.ToUpper(strings.TrimSpace(rec.ID))
	if err := hierid.Validate(id); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, &emptyNameError{ID: id}
	}

	typ := hierid.DeriveType(id)

	l := &Location{
		id:           id,
		name:         name,
		unlocode:     rec.UNLOCODE,
		countryCode:  rec.CountryCode,
		subType:      rec.SubType,
		translations: cloneStringMap(rec.Translations),
		otherNames:   append([]string(nil), rec.OtherNames...),
		demonym:      rec.Demonym,
		coordinates:  rec.Coordinates,
		borders:      append([]string(nil), rec.Borders...),
		capital:      rec.Capital,
		area:         rec.Area,
		population:   rec.Population,
		languages:    append([]string(nil), rec.Languages...),
		altAdmin:     append([]AdminDivision(nil), rec.AltAdmin...),
		typ:          typ,
	}

	l.isInsideContinent = hierid.IsInsideContinent(typ)
	l.isInsideRegion = hierid.IsInsideRegion(typ)
	l.isInsideCountry = hierid.IsInsideCountry(typ)
	l.isInsideAdminArea2 = hierid.IsInsideAdminArea2(id, typ)
	l.isInsideAdminArea1 = hierid.IsInsideAdminArea1(id, typ)

	if l.isInsideContinent {
		v := hierid.ContinentID(id)
		l.continentID = &v
	}
	if l.isInsideRegion {
		v := hierid.RegionID(id)
		l.regionID = &v
	}
	if l.isInsideCountry {
		v := hierid.CountryID(id)
		l.countryID = &v
	}
	if l.isInsideAdminArea2 {
		v := hierid.AdminArea2ID(id)
		l.adminArea2ID = &v
	}
	if l.isInsideAdminArea1 {
		v := hierid.AdminArea1ID(id)
		l.adminArea1ID = &v
	}

	l.parentsIDs = hierid.ParentsIDs(id, typ)
	l.labels, l.labelSet = buildLabels(name, l.translations, l.otherNames)

	return l, nil
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// buildLabels computes the lower-cased label set: {lower(name)} ∪
// lower(translations.values) ∪ lower(otherNames). Order is deterministic
// (name first, then translations sorted by language code, then other
// names in input order) so that anything iterating Labels() — the
// adding-entity label search in particular — is reproducible.
func buildLabels(name string, translations map[string]string, otherNames []string) ([]string, map[string]struct{}) {
	set := make(map[string]struct{})
	var ordered []string

	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return
		}
		if _, ok := set[s]; ok {
			return
		}
		set[s] = struct{}{}
		ordered = append(ordered, s)
	}

	add(name)

	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		add(translations[lang])
	}

	for _, n := range otherNames {
		add(n)
	}

	return ordered, set
}

// ID returns the 13-hex location id.
func (l *Location) ID() string { return l.id }

// Name returns the primary display name.
func (l *Location) Name() string { return l.name }

// Type returns the derived location level.
func (l *Location) Type() Type { return l.typ }

// Labels returns the lower-cased set of strings this location may be
// matched under, in deterministic order.
func (l *Location) Labels() []string { return l.labels }

// HasLabel reports whether s (already lower-cased) is one of this
// location's labels.
func (l *Location) HasLabel(s string) bool {
	_, ok := l.labelSet[s]
	return ok
}

// ParentsIDs returns the ordered list of containing-location ids, nearest
// first, excluding the region (spec §3.1).
func (l *Location) ParentsIDs() []string { return l.parentsIDs }

func (l *Location) IsInsideContinent() bool { return l.isInsideContinent }
func (l *Location) IsInsideRegion() bool { return l.isInsideRegion }
func (l *Location) IsInsideCountry() bool { return l.isInsideCountry }
func (l *Location) IsInsideAdminArea2() bool { return l.isInsideAdminArea2 }
func (l *Location) IsInsideAdminArea1() bool { return l.isInsideAdminArea1 }

func (l *Location) ContinentID() *string { return l.continentID }
func (l *Location) RegionID() *string { return l.regionID }
func (l *Location) CountryID() *string { return l.countryID }
func (l *Location) AdminArea2ID() *string { return l.adminArea2ID }
func (l *Location) AdminArea1ID() *string { return l.adminArea1ID }

func (l *Location) UNLOCODE() string { return l.unlocode }
func (l *Location) CountryCode() string { return l.countryCode }
func (l *Location) SubType() string { return l.subType }
func (l *Location) Translations() map[string]string { return l.translations }
func (l *Location) OtherNames() []string { return l.otherNames }
func (l *Location) Demonym() string { return l.demonym }
func (l *Location) Coordinates() *Coordinates { return l.coordinates }
func (l *Location) Borders() []string { return l.borders }
func (l *Location) Capital() *bool { return l.capital }
func (l *Location) Area() *int { return l.area }
func (l *Location) Population() *int { return l.population }
func (l *Location) Languages() []string { return l.languages }
func (l *Location) AltAdminDivisions() []AdminDivision { return l.altAdmin }

// IsCountry is a convenience predicate used throughout confidence
// calibration and statistics (spec §4.8/§4.9).
func (l *Location) IsCountry() bool { return l.typ == Country }

// IsBigCity reports whether this City clears the BigCityPopulation
// threshold or is flagged capital — the split spec §4.1's dominance
// ladder names but does not define (see BigCityPopulation's doc comment).
// Always false for non-City types.
func (l *Location) IsBigCity() bool {
	if l.typ != City {
		return false
	}
	if l.capital != nil && *l.capital {
		return true
	}
	return l.population != nil && *l.population >= BigCityPopulation
}

// ImmediateParentID returns the nearest containing-location id (the first
// entry of ParentsIDs), used by the brother/sibling predicate (spec
// §4.6): two locations of the same type are brothers if they share this
// value. ok is false for a Continent, which has no parent at all.
func (l *Location) ImmediateParentID() (id string, ok bool) {
	if len(l.parentsIDs) == 0 {
		return "", false
	}
	return l.parentsIDs[0], true
}

// DominanceKey builds the hierid comparator input for this location.
func (l *Location) DominanceKey() hierid.DominanceKey {
	return hierid.DominanceKey{
		Type:       l.typ,
		IsBigCity:  l.IsBigCity(),
		Population: l.population,
		ID:         l.id,
	}
}

type emptyNameError struct{ ID string }

func (e *emptyNameError) Error() string {
	return "location " + e.ID + " has an empty name"
}
