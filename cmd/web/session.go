package main

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/spoonmap/internal/itinerary"
	"github.com/myrjola/spoonmap/internal/navigation"
	"github.com/myrjola/spoonmap/internal/search"
	"github.com/myrjola/spoonmap/internal/spoiler"
	"github.com/myrjola/spoonmap/internal/state"
)

const (
	userIDSessionKey     = "userID"
	navigationSessionKey = "navigation"
	searchSessionKey     = "search"
	spoilersSessionKey   = "spoilers"
	tripSessionKey       = "trip"
)

func init() { //nolint:gochecknoinits // gob needs the concrete session value types
	gob.Register(navigation.State{})    //nolint:exhaustruct // type registration
	gob.Register(search.State{})        //nolint:exhaustruct // type registration
	gob.Register(spoiler.State{})       //nolint:exhaustruct // type registration
	gob.Register(itinerary.Itinerary{}) //nolint:exhaustruct // type registration
}

// visitor is the state of one visitor for the duration of a request. Every store writes its new value back to the
// session after each dispatch.
type visitor struct {
	navigation *state.Store[navigation.State]
	search     *state.Store[search.State]
	spoilers   *state.Store[spoiler.State]
	trip       *state.Store[itinerary.Itinerary]
}

func (app *application) visitor(r *http.Request) *visitor {
	ctx := r.Context()
	sm := app.sessionManager
	return &visitor{
		navigation: sessionStore(ctx, sm, navigationSessionKey, navigation.Initial()),
		search:     sessionStore(ctx, sm, searchSessionKey, search.State{}),      //nolint:exhaustruct // empty query
		spoilers:   sessionStore(ctx, sm, spoilersSessionKey, spoiler.State{}),   //nolint:exhaustruct // hidden
		trip:       sessionStore(ctx, sm, tripSessionKey, itinerary.Itinerary{}), //nolint:exhaustruct // empty trip
	}
}

// sessionStore loads the value at key, or fallback for a new visitor, and persists every change.
func sessionStore[S any](ctx context.Context, sm *scs.SessionManager, key string, fallback S) *state.Store[S] {
	initial := fallback
	if stored, ok := sm.Get(ctx, key).(S); ok {
		initial = stored
	}
	store := state.NewStore(initial)
	store.Subscribe(func(s S) {
		sm.Put(ctx, key, s)
	})
	return store
}

// navigate dispatches a navigation transition and applies its effects.
func (v *visitor) navigate(transition func(navigation.State) (navigation.State, navigation.Effects)) {
	var effects navigation.Effects
	v.navigation.Dispatch(func(s navigation.State) navigation.State {
		var next navigation.State
		next, effects = transition(s)
		return next
	})
	if effects.ClearSearch {
		v.search.Dispatch(search.State.Clear)
	}
}
