// Command geodisambig runs the disambiguation engine against a
// gazetteer snapshot and a scenario file, printing the ranked result.
//
// Usage:
//
//	go run ./cmd/geodisambig -gazetteer gazetteer.jsonl -scenario scenario.json
//
// A gazetteer path ending in .jsonl is read as a line-delimited JSON
// source (gazetteer.Loader); any other extension is read as a
// gob+gzip snapshot (gazetteer.LoadSnapshot).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/andreiashu/geodisambig/candidate"
	"github.com/andreiashu/geodisambig/engine"
	"github.com/andreiashu/geodisambig/gazetteer"
)

// scenarioFile is the on-disk shape of one disambiguation run: the
// already-tokenized input text, the pre-extracted candidate entities,
// and the pre-computed coordinate/ambiguity group relations (all three
// external collaborators spec §1 assumes exist upstream of this
// engine).
type scenarioFile struct {
	Tokens            []string             `json:"tokens"`
	Candidates        []candidateJSON      `json:"candidates"`
	CoordinateGroups  [][]string           `json:"coordinateGroups"`
	AmbiguityGroups   [][]string           `json:"ambiguityGroups"`
}

type candidateJSON struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func main() {
	gazPath := flag.String("gazetteer", "", "path to a gazetteer source (.jsonl) or snapshot")
	scenarioPath := flag.String("scenario", "", "path to a scenario JSON file")
	flag.Parse()

	if *gazPath == "" || *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: geodisambig -gazetteer <path> -scenario <path>")
		os.Exit(2)
	}

	fmt.Println("=== Geodisambig ===")
	fmt.Println()

	fmt.Println("[1/3] Loading gazetteer...")
	dict, err := loadGazetteer(*gazPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading gazetteer: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("      %d locations indexed\n", dict.Len())

	fmt.Println("[2/3] Loading scenario...")
	scenario, err := loadScenario(*scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("      %d tokens, %d candidates\n", len(scenario.Tokens), len(scenario.Candidates))

	fmt.Println("[3/3] Running disambiguation...")
	candidates := make([]candidate.Entity, 0, len(scenario.Candidates))
	for _, c := range scenario.Candidates {
		candidates = append(candidates, candidate.New(c.Name, c.Score))
	}

	eng := engine.New()
	results, stats, err := eng.FindLocations(dict, scenario.Tokens, candidates, scenario.CoordinateGroups, scenario.AmbiguityGroups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running disambiguation: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Results ===")
	if len(results) == 0 {
		fmt.Println("(no locations resolved)")
		return
	}
	for _, L := range results {
		fmt.Printf("%-14s %-24s score=%.4f confidence=%.4f mentions=%s\n",
			L.Location.ID(), L.Location.Name(), L.Score, L.Confidence,
			strings.Join(L.AssignedMentions, ","))
	}

	if stats != nil {
		fmt.Println()
		fmt.Printf("score:      avg=%.4f stdDev=%.4f stdDev%%=%.4f\n",
			stats.Score.Avg, stats.Score.StdDev, stats.Score.StdDevPerc)
		fmt.Printf("confidence: avg=%.4f stdDev=%.4f stdDev%%=%.4f\n",
			stats.Confidence.Avg, stats.Confidence.StdDev, stats.Confidence.StdDevPerc)
	}
}

func loadGazetteer(path string) (*gazetteer.Dictionary, error) {
	if strings.HasSuffix(path, ".jsonl") {
		loader := gazetteer.NewLoader(gazetteer.WithSourcePath(path))
		dict, _, err := loader.Load()
		return dict, err
	}
	return gazetteer.LoadSnapshot(path)
}

func loadScenario(path string) (*scenarioFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s scenarioFile
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}
