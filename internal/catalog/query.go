package catalog

import (
	"strings"
)

// MaxSearchResults bounds the number of chefs [Catalog.SearchChefs] returns.
const MaxSearchResults = 5

// FindShow returns the show with the given id.
func (c *Catalog) FindShow(id string) (Show, bool) {
	for _, show := range c.shows {
		if show.ID == id {
			return show, true
		}
	}
	return Show{}, false //nolint:exhaustruct // not found
}

// FindChef returns the chef with the given id.
func (c *Catalog) FindChef(id string) (Chef, bool) {
	for _, chef := range c.chefs {
		if chef.ID == id {
			return chef, true
		}
	}
	return Chef{}, false //nolint:exhaustruct // not found
}

// ChefsInSeason resolves the roster of the given season in roster order. Ids without a matching chef are skipped.
// An unknown season yields an empty roster.
func (c *Catalog) ChefsInSeason(show Show, seasonNumber int) []Chef {
	season, ok := show.Season(seasonNumber)
	if !ok {
		return nil
	}
	chefs := make([]Chef, 0, len(season.Chefs))
	for _, id := range season.Chefs {
		if chef, found := c.FindChef(id); found {
			chefs = append(chefs, chef)
		}
	}
	return chefs
}

// SearchChefs matches query case-insensitively as a substring of the real name or moniker.
//
// A blank query matches nothing. Results follow catalog order and are truncated to [MaxSearchResults].
func (c *Catalog) SearchChefs(query string) []Chef {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := strings.ToLower(query)
	var results []Chef
	for _, chef := range c.chefs {
		if len(results) == MaxSearchResults {
			break
		}
		if strings.Contains(strings.ToLower(chef.RealName), q) ||
			(chef.Moniker != "" && strings.Contains(strings.ToLower(chef.Moniker), q)) {
			results = append(results, chef)
		}
	}
	return results
}
