package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/itinerary"
	"github.com/myrjola/spoonmap/internal/leaflet"
	"github.com/myrjola/spoonmap/internal/mappanel"
	"github.com/myrjola/spoonmap/internal/navigation"
	"github.com/myrjola/spoonmap/internal/spoiler"
)

type restaurantView struct {
	catalog.Restaurant
	UID        string
	WebsiteURL string
	BookingURL string
	InTrip     bool
}

type appearanceView struct {
	ShowID    string
	ShowTitle string
	Banner    string
	Season    int
	Result    spoiler.Badge
}

type profileTemplateData struct {
	BaseTemplateData
	Chef        catalog.Chef
	Name        string
	Rank        spoiler.Badge
	Restaurants []restaurantView
	Appearances []appearanceView
	// Map is nil while the map is initializing, e.g. when it could not be constructed.
	Map *leaflet.Document
}

func (app *application) profile(w http.ResponseWriter, r *http.Request) {
	chef, ok := app.catalog.FindChef(r.PathValue("chefID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	v := app.visitor(r)
	v.navigate(func(s navigation.State) (navigation.State, navigation.Effects) {
		return s.SelectChef(chef.ID)
	})
	spoilers := v.spoilers.Get()

	data := profileTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Chef:             chef,
		Name:             chef.DisplayName(),
		Rank:             spoilers.RankBadge(chef.Rank),
		Restaurants:      restaurantViews(chef, v.trip.Get()),
		Appearances:      app.appearanceViews(chef, spoilers),
		Map:              app.restaurantMap(r.Context(), chef),
	}
	// The map may have injected its assets into the head after the base data was collected.
	data.Stylesheets = app.mapHead.Stylesheets()
	data.Scripts = app.mapHead.Scripts()
	app.render(w, r, http.StatusOK, "profile", data)
}

func restaurantViews(chef catalog.Chef, trip itinerary.Itinerary) []restaurantView {
	views := make([]restaurantView, len(chef.Restaurants))
	for i, restaurant := range chef.Restaurants {
		website, _ := restaurant.Website()
		views[i] = restaurantView{
			Restaurant: restaurant,
			UID:        restaurant.UID(),
			WebsiteURL: website,
			BookingURL: restaurant.BookingURL(),
			InTrip:     trip.Contains(restaurant.UID()),
		}
	}
	return views
}

func (app *application) appearanceViews(chef catalog.Chef, spoilers spoiler.State) []appearanceView {
	views := make([]appearanceView, len(chef.Appearances))
	for i, appearance := range chef.Appearances {
		view := appearanceView{
			ShowID:    appearance.ShowID,
			ShowTitle: appearance.ShowID,
			Banner:    "",
			Season:    appearance.Season,
			Result:    spoilers.ResultBadge(appearance.Result),
		}
		if show, ok := app.catalog.FindShow(appearance.ShowID); ok {
			view.ShowTitle = show.Title
			view.Banner = show.Banner
		}
		views[i] = view
	}
	return views
}

// restaurantMap mounts a map panel for the chef's restaurants and returns the resulting map document. It returns
// nil when the map did not mount; the failure has been logged by then.
func (app *application) restaurantMap(ctx context.Context, chef catalog.Chef) *leaflet.Document {
	panel := mappanel.New(app.mapLoader, app.mapCapability,
		mappanel.WithMountDelay(app.mapMountDelay),
		mappanel.WithTileLayer(app.mapTiles),
		mappanel.WithLogger(app.logger),
	)
	defer panel.Close()

	panel.SetRestaurants(chef.Restaurants)
	panel.Attach(mappanel.Surface("map-" + chef.ID))
	if err := panel.Load(ctx); err != nil {
		return nil
	}
	if _, err := panel.Await(ctx); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "map did not mount in time",
			slog.String("chef_id", chef.ID), errors.SlogError(err))
		return nil
	}
	live, ok := panel.Live()
	if !ok {
		return nil
	}
	m, ok := live.(*leaflet.Map)
	if !ok {
		return nil
	}
	doc, ok := m.Document()
	if !ok {
		return nil
	}
	return &doc
}
