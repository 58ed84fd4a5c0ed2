package extloc

import (
	"math"
	"testing"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/location"
)

func mustLoc(t *testing.T, id, name string) *location.Location {
	t.Helper()
	loc, err := location.New(location.Record{ID: id, Name: name})
	if err != nil {
		t.Fatalf("location.New: %v", err)
	}
	return loc
}

func TestNewComputesMeanInitScore(t *testing.T) {
	loc := mustLoc(t, "1218000000000", "Romania")
	originators := []candidate.Entity{
		candidate.New("Romania", 0.8),
		candidate.New("Romania", 0.4),
	}
	el := New(loc, nil, originators)

	if math.Abs(el.InitScore-0.6) > 1e-9 {
		t.Errorf("InitScore = %v, want 0.6", el.InitScore)
	}
	if el.Score != el.InitScore {
		t.Error("Score should start equal to InitScore")
	}
	if len(el.EntityNames()) != 1 {
		t.Errorf("two originators with the same normName should collapse to one entity")
	}
}

func TestRemoveEntityAndIsEmpty(t *testing.T) {
	loc := mustLoc(t, "1218000000000", "Romania")
	el := New(loc, nil, []candidate.Entity{candidate.New("Romania", 0.5)})

	if el.IsEmpty() {
		t.Fatal("should not be empty right after construction")
	}
	el.RemoveEntity("romania")
	if !el.IsEmpty() {
		t.Error("should be empty after removing its only entity")
	}
}

func TestEntriesExceptAndIntersect(t *testing.T) {
	loc := mustLoc(t, "1218000000000", "Romania")
	el := New(loc, nil, []candidate.Entity{
		candidate.New("Romania", 0.7),
		candidate.New("Bucharest", 0.6),
	})

	entries := el.EntriesExcept(map[string]bool{"bucharest": true})
	if len(entries) != 1 || entries[0].Name != "romania" {
		t.Errorf("EntriesExcept did not exclude as expected: %+v", entries)
	}

	other := New(mustLoc(t, "1219000000000", "Other"), nil, []candidate.Entity{
		candidate.New("Romania", 0.3),
	})
	shared := el.IntersectEntityNames(other)
	if len(shared) != 1 || !shared["romania"] {
		t.Errorf("IntersectEntityNames = %v, want {romania}", shared)
	}
}
