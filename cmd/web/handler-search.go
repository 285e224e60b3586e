package main

import (
	"net/http"

	"github.com/myrjola/spoonmap/internal/search"
)

type searchTemplateData struct {
	Query   string
	Active  bool
	Results []chefCard
}

func (app *application) newSearchTemplateData(v *visitor) searchTemplateData {
	s := v.search.Get()
	spoilers := v.spoilers.Get()
	results := s.Results(app.catalog)
	cards := make([]chefCard, len(results))
	for i, chef := range results {
		cards[i] = newChefCard(chef, spoilers)
	}
	return searchTemplateData{Query: s.Query, Active: s.Active, Results: cards}
}

type searchPageTemplateData struct {
	BaseTemplateData
}

// search updates the query. htmx requests get the results overlay only.
func (app *application) search(w http.ResponseWriter, r *http.Request) {
	v := app.visitor(r)
	query := r.URL.Query().Get("q")
	v.search.Dispatch(func(s search.State) search.State {
		return s.Set(query)
	})

	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.renderPartial(w, r, "search", "search-results", app.newSearchTemplateData(v))
		return
	}
	data := searchPageTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
	}
	app.render(w, r, http.StatusOK, "search", data)
}
