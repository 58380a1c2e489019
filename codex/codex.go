// Package codex holds the fixed mental operating rules shown on the
// dashboard and the codex command.
package codex

// Rules lists what is off-limits and what is allowed during the search.
type Rules struct {
	Donts []string
	Dos   []string
}

// MentalRules returns the operating rules. The set is fixed; it is the
// one part of the system that is not configurable.
func MentalRules() Rules {
	return Rules{
		Donts: []string{
			"No rewriting your narrative daily",
			"No comparing yourself to ideal candidates",
			"No stack-switching",
			`No "should I quit" thinking`,
			"No AI during practice (Coding Phase)",
		},
		Dos: []string{
			"You are allowed to feel tired",
			"You are not allowed to change direction because of feelings",
		},
	}
}
