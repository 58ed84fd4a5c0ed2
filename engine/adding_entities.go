package engine

import (
	"strings"

	"github.com/andreiashu/geodisambig/extloc"
	"github.com/andreiashu/geodisambig/gazetteer"
)

// findAddingEntities implements spec §4.5: an "adding entity" is a label
// of some location that is a parent of a working extended location but
// is not itself one (an "orphan" parent), and whose word sequence
// occurs as a contiguous run inside the lower-cased input tokens. These
// labels are not turned into new extended locations — they only feed
// the parent-boost fallback (spec §4.6) for locations whose real parent
// never matched any candidate entity.
func findAddingEntities(dict *gazetteer.Dictionary, working map[string]*extloc.ExtendedLocation, tokens []string) (map[string]bool, error) {
	orphanIDs := make(map[string]bool)
	for _, el := range working {
		for _, pid := range el.Location.ParentsIDs() {
			if _, ok := working[pid]; !ok {
				orphanIDs[pid] = true
			}
		}
	}

	labels := make(map[string]bool)
	for pid := range orphanIDs {
		parent, err := dict.RequireByID(pid)
		if err != nil {
			return nil, err
		}
		for _, label := range parent.Labels() {
			labels[label] = true
		}
	}

	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}
	index := buildTokenIndex(lower)

	adding := make(map[string]bool)
	for label := range labels {
		if containsContiguous(lower, index, strings.Split(label, " ")) {
			adding[label] = true
		}
	}
	return adding, nil
}

// buildTokenIndex maps each distinct lower-cased token to the positions
// it occurs at, so a label's first word can be located in O(1) instead
// of scanning the whole token list per label.
func buildTokenIndex(tokens []string) map[string][]int {
	idx := make(map[string][]int, len(tokens))
	for i, t := range tokens {
		idx[t] = append(idx[t], i)
	}
	return idx
}

// containsContiguous reports whether words occurs as a contiguous
// sub-sequence of tokens, using index to skip straight to candidate
// start positions instead of testing every offset.
func containsContiguous(tokens []string, index map[string][]int, words []string) bool {
	if len(words) == 0 || words[0] == "" {
		return false
	}
	for _, start := range index[words[0]] {
		if start+len(words) > len(tokens) {
			continue
		}
		match := true
		for j, w := range words {
			if tokens[start+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
