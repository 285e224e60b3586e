package catalog

import (
	"fmt"
)

// Severity tells whether a Problem breaks an invariant or only degrades rendering.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is a single finding of [Catalog.Validate].
type Problem struct {
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Severity, p.Message)
}

// Validate checks the catalog invariants.
//
// Duplicate show ids, chef ids, season numbers and restaurant uids within a chef are errors. Season roster entries
// and appearances referring to unknown ids are warnings: the queries drop or degrade them gracefully.
func (c *Catalog) Validate() []Problem {
	var problems []Problem
	errorf := func(format string, args ...any) {
		problems = append(problems, Problem{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...any) {
		problems = append(problems, Problem{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
	}

	showIDs := make(map[string]bool, len(c.shows))
	for _, show := range c.shows {
		if show.ID == "" {
			errorf("show %q has no id", show.Title)
		}
		if showIDs[show.ID] {
			errorf("duplicate show id %q", show.ID)
		}
		showIDs[show.ID] = true
	}

	chefIDs := make(map[string]bool, len(c.chefs))
	for _, chef := range c.chefs {
		if chef.ID == "" {
			errorf("chef %q has no id", chef.RealName)
		}
		if chefIDs[chef.ID] {
			errorf("duplicate chef id %q", chef.ID)
		}
		chefIDs[chef.ID] = true

		uids := make(map[string]bool, len(chef.Restaurants))
		for _, r := range chef.Restaurants {
			if uids[r.UID()] {
				errorf("chef %q has duplicate restaurant uid %q", chef.ID, r.UID())
			}
			uids[r.UID()] = true
			if r.Coords == nil {
				warnf("restaurant %q of chef %q has no coordinates", r.UID(), chef.ID)
			}
		}
	}

	for _, show := range c.shows {
		numbers := make(map[int]bool, len(show.Seasons))
		for _, season := range show.Seasons {
			if numbers[season.Number] {
				errorf("show %q has duplicate season %d", show.ID, season.Number)
			}
			numbers[season.Number] = true
			for _, chefID := range season.Chefs {
				if !chefIDs[chefID] {
					warnf("show %q season %d lists unknown chef %q", show.ID, season.Number, chefID)
				}
			}
		}
	}

	for _, chef := range c.chefs {
		for _, appearance := range chef.Appearances {
			if !showIDs[appearance.ShowID] {
				warnf("chef %q appears in unknown show %q", chef.ID, appearance.ShowID)
			}
		}
	}

	return problems
}

// HasErrors reports whether any of the problems has [SeverityError].
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
