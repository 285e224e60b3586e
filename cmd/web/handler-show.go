package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/navigation"
)

type seasonTab struct {
	Number   int
	Selected bool
}

type showTemplateData struct {
	BaseTemplateData
	Show       catalog.Show
	Seasons    []seasonTab
	SeasonName string
	Chefs      []chefCard
}

// show focuses the show. The season query parameter selects a season, otherwise the first season is shown.
func (app *application) show(w http.ResponseWriter, r *http.Request) {
	show, ok := app.catalog.FindShow(r.PathValue("showID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	v := app.visitor(r)
	v.navigate(func(s navigation.State) (navigation.State, navigation.Effects) {
		return s.SelectShow(show)
	})
	if raw := r.URL.Query().Get("season"); raw != "" {
		if number, err := strconv.Atoi(raw); err == nil {
			v.navigation.Dispatch(func(s navigation.State) navigation.State {
				return s.SelectSeason(number)
			})
		}
	}
	app.renderShow(w, r, v, show)
}

// seasonJump opens a season from the competition history of a chef.
func (app *application) seasonJump(w http.ResponseWriter, r *http.Request) {
	show, ok := app.catalog.FindShow(r.PathValue("showID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	number, err := strconv.Atoi(r.PathValue("season"))
	if err != nil {
		app.notFound(w, r)
		return
	}
	v := app.visitor(r)
	v.navigate(func(s navigation.State) (navigation.State, navigation.Effects) {
		return s.SelectAppearance(show.ID, number)
	})
	app.renderShow(w, r, v, show)
}

func (app *application) renderShow(w http.ResponseWriter, r *http.Request, v *visitor, show catalog.Show) {
	selected := v.navigation.Get().Season
	spoilers := v.spoilers.Get()

	tabs := make([]seasonTab, len(show.Seasons))
	for i, season := range show.Seasons {
		tabs[i] = seasonTab{Number: season.Number, Selected: season.Number == selected}
	}
	seasonName := "Competition"
	if season, ok := show.Season(selected); ok && season.Name != "" {
		seasonName = season.Name
	}
	roster := app.catalog.ChefsInSeason(show, selected)
	cards := make([]chefCard, len(roster))
	for i, chef := range roster {
		cards[i] = newChefCard(chef, spoilers)
	}

	data := showTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Show:             show,
		Seasons:          tabs,
		SeasonName:       seasonName,
		Chefs:            cards,
	}
	app.render(w, r, http.StatusOK, "show", data)
}

// back leaves the current view, see [navigation.State.Back].
func (app *application) back(w http.ResponseWriter, r *http.Request) {
	v := app.visitor(r)
	v.navigate(navigation.State.Back)
	http.Redirect(w, r, viewPath(v.navigation.Get()), http.StatusSeeOther)
}

// viewPath is the URL rendering s.
func viewPath(s navigation.State) string {
	switch s.View {
	case navigation.ViewShow:
		return fmt.Sprintf("/shows/%s?season=%d", url.PathEscape(s.ShowID), s.Season)
	case navigation.ViewProfile:
		return "/chefs/" + url.PathEscape(s.ChefID)
	case navigation.ViewHome:
	}
	return "/"
}
