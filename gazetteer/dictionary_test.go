package gazetteer

import (
	"testing"

	"github.com/andreiashu/geodisambig/location"
)

func mustLoc(t *testing.T, rec location.Record) *location.Location {
	t.Helper()
	loc, err := location.New(rec)
	if err != nil {
		t.Fatalf("location.New(%+v): %v", rec, err)
	}
	return loc
}

func TestDictionaryLookups(t *testing.T) {
	georgiaCountry := mustLoc(t, location.Record{ID: "1218000000000", Name: "Georgia"})
	georgiaState := mustLoc(t, location.Record{ID: "5111000000000", Name: "Georgia"})

	dict := New([]*location.Location{georgiaCountry, georgiaState})

	if dict.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", dict.Len())
	}

	matches := dict.GetByLabel("georgia")
	if len(matches) != 2 {
		t.Fatalf("GetByLabel(\"georgia\") = %d matches, want 2", len(matches))
	}
	if matches[0].ID() > matches[1].ID() {
		t.Error("GetByLabel results should be ordered deterministically by id")
	}

	if dict.GetByID("1218000000000") == nil {
		t.Error("GetByID should find the country by its exact id")
	}
	if dict.GetByID("1218000000000") != dict.GetByID("1218000000000") {
		t.Error("GetByID should be stable across calls")
	}
	if dict.GetByLabel("nowhere") != nil {
		t.Error("GetByLabel should return nil for an unknown label")
	}
}

func TestRequireByID(t *testing.T) {
	loc := mustLoc(t, location.Record{ID: "1218000000000", Name: "Georgia"})
	dict := New([]*location.Location{loc})

	if _, err := dict.RequireByID("1218000000000"); err != nil {
		t.Errorf("RequireByID on a present id should not error: %v", err)
	}
	if _, err := dict.RequireByID("9999000000000"); err == nil {
		t.Error("RequireByID on a missing id should return LocationNotFoundError")
	}
}
