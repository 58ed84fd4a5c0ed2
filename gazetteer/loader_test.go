package gazetteer

import (
	"strings"
	"testing"
)

func TestLoadFromSkipsExcludedAndMalformedRecords(t *testing.T) {
	src := strings.Join([]string{
		`{"id":"1218000000000","name":"Romania"}`,
		`{"id":"51180C026000A","name":"Small Hamlet","subType":"hamlet"}`,
		`{"id":"not-an-id","name":"Broken"}`,
		`not even json`,
		``,
	}, "\n")

	loader := NewLoader()
	dict, stats, err := loader.LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadFrom: unexpected error: %v", err)
	}

	if stats.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", stats.Loaded)
	}
	if stats.SkippedExcluded != 1 {
		t.Errorf("SkippedExcluded = %d, want 1", stats.SkippedExcluded)
	}
	if stats.SkippedMalformed != 2 {
		t.Errorf("SkippedMalformed = %d, want 2", stats.SkippedMalformed)
	}
	if dict.Len() != 1 {
		t.Fatalf("dict.Len() = %d, want 1", dict.Len())
	}
	if dict.GetByLabel("romania") == nil {
		t.Error("Romania should have loaded successfully")
	}
}

func TestLoadFromStrictFailsOnFirstError(t *testing.T) {
	src := `{"id":"not-an-id","name":"Broken"}` + "\n"

	loader := NewLoader(WithStrict(true))
	if _, _, err := loader.LoadFrom(strings.NewReader(src)); err == nil {
		t.Error("strict mode should fail the whole load on a malformed record")
	}
}

func TestLoadFromParsesOptionalFields(t *testing.T) {
	src := `{"id":"51180C026000A","name":"Washington","lat":38.9,"lon":-77.0,"population":700000,"capital":true}` + "\n"

	loader := NewLoader()
	dict, _, err := loader.LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadFrom: unexpected error: %v", err)
	}

	loc := dict.GetByID("51180C026000A")
	if loc == nil {
		t.Fatal("expected Washington to load")
	}
	if loc.Coordinates() == nil {
		t.Error("expected coordinates to be set")
	}
	if loc.Population() == nil || *loc.Population() != 700000 {
		t.Error("expected population to be set")
	}
	if !loc.IsBigCity() {
		t.Error("a capital should be a big city")
	}
}
