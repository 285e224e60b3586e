// Package search holds the text of the global chef search and whether its overlay is shown.
package search

import (
	"github.com/myrjola/spoonmap/internal/catalog"
)

type State struct {
	Query  string
	Active bool
}

// Set replaces the query. The overlay is active for any non-empty input, including whitespace, while the results
// for a blank query stay empty.
func (s State) Set(query string) State {
	return State{Query: query, Active: len(query) > 0}
}

// Clear empties the query and hides the overlay.
func (s State) Clear() State {
	return State{Query: "", Active: false}
}

// Results runs the query against c.
func (s State) Results(c *catalog.Catalog) []catalog.Chef {
	return c.SearchChefs(s.Query)
}
