package ui

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID returns a record id with its unique prefix highlighted.
func HighlightID(id string, prefixLen int) string {
	if id == "" {
		return id
	}

	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}

	if !ansiEnabled() {
		return id
	}

	return ansiBold + ansiCyan + id[:prefixLen] + ansiReset + id[prefixLen:]
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UniqueIDPrefixLengths returns the shortest unique prefix length for each
// id, keyed by the lowercased id. Look entries up with PrefixLength.
func UniqueIDPrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	sorted := make([]string, len(uniqueIDs))
	copy(sorted, uniqueIDs)
	sort.Strings(sorted)

	// In sorted order an id's shortest unique prefix is one longer than
	// its longest shared prefix with either neighbor.
	lengths := make(map[string]int, len(sorted))
	for i, id := range sorted {
		shared := 0
		if i > 0 {
			shared = sharedPrefixLength(id, sorted[i-1])
		}
		if i < len(sorted)-1 {
			if n := sharedPrefixLength(id, sorted[i+1]); n > shared {
				shared = n
			}
		}
		length := shared + 1
		if length > len(id) {
			length = len(id)
		}
		lengths[id] = length
	}

	return lengths
}

// PrefixLength looks up an id's unique prefix length, case-insensitively.
// Unknown ids report 0, which HighlightID treats as no highlight.
func PrefixLength(lengths map[string]int, id string) int {
	if len(lengths) == 0 || id == "" {
		return 0
	}
	return lengths[strings.ToLower(id)]
}

func sharedPrefixLength(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for i := 0; i < max; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return max
}
