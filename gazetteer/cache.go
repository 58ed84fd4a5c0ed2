package gazetteer

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/andreiashu/geodisambig/location"
)

// Snapshot persistence is explicitly out of scope for the core spec
// ("Any persistence format for the dictionary snapshot" — spec §1 lists
// it among the external collaborators) but a loader this shaped still
// needs *something* so a large gazetteer isn't re-parsed from JSONL on
// every process start. This adapts the teacher's own
// store/loadGeobedCityData/gob pipeline (GOB encoding over a flat,
// exported mirror struct, gzip instead of bzip2 since there is no
// upstream "download once, compress by hand" step here) to a Dictionary
// snapshot instead of a Cities/Countries/nameIndex triple.

// gobRecord mirrors location.Record with exported fields so gob can see
// them — Location itself keeps its fields private by design (spec §3.1:
// immutable record), so the snapshot format is Record, not Location.
type gobRecord struct {
	ID           string
	Name         string
	UNLOCODE     string
	CountryCode  string
	SubType      string
	Translations map[string]string
	OtherNames   []string
	Demonym      string
	HasCoords    bool
	Lat, Lon     float64
	Borders      []string
	HasCapital   bool
	Capital      bool
	HasArea      bool
	Area         int
	HasPop       bool
	Population   int
	Languages    []string
	AltAdmin     []location.AdminDivision
}

func toGobRecord(loc *location.Location) gobRecord {
	g := gobRecord{
		ID:           loc.ID(),
		Name:         loc.Name(),
		UNLOCODE:     loc.UNLOCODE(),
		CountryCode:  loc.CountryCode(),
		SubType:      loc.SubType(),
		Translations: loc.Translations(),
		OtherNames:   loc.OtherNames(),
		Demonym:      loc.Demonym(),
		Borders:      loc.Borders(),
		Languages:    loc.Languages(),
		AltAdmin:     loc.AltAdminDivisions(),
	}
	if c := loc.Coordinates(); c != nil {
		g.HasCoords = true
		g.Lat, g.Lon = c.Lat(), c.Lon()
	}
	if cap := loc.Capital(); cap != nil {
		g.HasCapital = true
		g.Capital = *cap
	}
	if a := loc.Area(); a != nil {
		g.HasArea = true
		g.Area = *a
	}
	if p := loc.Population(); p != nil {
		g.HasPop = true
		g.Population = *p
	}
	return g
}

func (g gobRecord) toLocation() (*location.Location, error) {
	rec := location.Record{
		ID:           g.ID,
		Name:         g.Name,
		UNLOCODE:     g.UNLOCODE,
		CountryCode:  g.CountryCode,
		SubType:      g.SubType,
		Translations: g.Translations,
		OtherNames:   g.OtherNames,
		Demonym:      g.Demonym,
		Borders:      g.Borders,
		Languages:    g.Languages,
		AltAdmin:     g.AltAdmin,
	}
	if g.HasCoords {
		if coords, ok := location.NewCoordinates(g.Lat, g.Lon); ok {
			rec.Coordinates = &coords
		}
	}
	if g.HasCapital {
		c := g.Capital
		rec.Capital = &c
	}
	if g.HasArea {
		a := g.Area
		rec.Area = &a
	}
	if g.HasPop {
		p := g.Population
		rec.Population = &p
	}
	return location.New(rec)
}

// SaveSnapshot gob-encodes and gzip-compresses d to path.
func SaveSnapshot(d *Dictionary, path string) error {
	records := make([]gobRecord, 0, d.Len())
	for _, loc := range d.byID {
		records = append(records, toGobRecord(loc))
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return fmt.Errorf("encoding dictionary snapshot: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	return gz.Close()
}

// LoadSnapshot reads a Dictionary previously written by SaveSnapshot.
func LoadSnapshot(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}
	defer gz.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gz); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var records []gobRecord
	if err := gob.NewDecoder(&buf).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding dictionary snapshot: %w", err)
	}

	locs := make([]*location.Location, 0, len(records))
	for _, g := range records {
		loc, err := g.toLocation()
		if err != nil {
			return nil, fmt.Errorf("rebuilding location %s: %w", g.ID, err)
		}
		locs = append(locs, loc)
	}
	return New(locs), nil
}
