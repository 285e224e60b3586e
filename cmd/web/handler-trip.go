package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/spoonmap/internal/itinerary"
)

// tripToggle adds a restaurant to the trip or removes it when already there.
func (app *application) tripToggle(w http.ResponseWriter, r *http.Request) {
	chef, ok := app.catalog.FindChef(r.PostFormValue("chef_id"))
	if !ok {
		app.notFound(w, r)
		return
	}
	restaurant, ok := chef.Restaurant(r.PostFormValue("restaurant_uid"))
	if !ok {
		app.notFound(w, r)
		return
	}
	v := app.visitor(r)
	var added bool
	v.trip.Dispatch(func(it itinerary.Itinerary) itinerary.Itinerary {
		var next itinerary.Itinerary
		next, added = it.Toggle(restaurant, chef)
		return next
	})
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "toggled trip item",
		slog.String("uid", restaurant.UID()), slog.Bool("added", added))
	app.redirectBack(w, r)
}

func (app *application) tripRemove(w http.ResponseWriter, r *http.Request) {
	uid := r.PostFormValue("uid")
	v := app.visitor(r)
	v.trip.Dispatch(func(it itinerary.Itinerary) itinerary.Itinerary {
		return it.Remove(uid)
	})
	app.redirectBack(w, r)
}

// tripPanel opens or closes the trip sidebar.
func (app *application) tripPanel(w http.ResponseWriter, r *http.Request) {
	var transition func(itinerary.Itinerary) itinerary.Itinerary
	switch r.PostFormValue("open") {
	case "true":
		transition = itinerary.Itinerary.OpenPanel
	case "false":
		transition = itinerary.Itinerary.ClosePanel
	default:
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	v := app.visitor(r)
	v.trip.Dispatch(transition)
	app.redirectBack(w, r)
}
