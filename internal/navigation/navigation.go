// Package navigation is the screen state machine: which view is rendered and which show, season and chef are in
// focus. Transitions are pure and total; selecting an unknown id is not an error, the page simply renders "not found".
package navigation

import (
	"github.com/myrjola/spoonmap/internal/catalog"
)

// View is the screen being rendered.
type View string

const (
	ViewHome    View = "home"
	ViewShow    View = "show"
	ViewProfile View = "profile"
)

// State is the navigation focus. The zero value is not valid, start from [Initial].
type State struct {
	View   View
	ShowID string
	Season int
	ChefID string
}

// Effects are the side effects a transition asks the rendering layer to perform.
type Effects struct {
	ScrollToTop bool
	ClearSearch bool
}

// Initial is the state of a new visitor.
func Initial() State {
	return State{View: ViewHome, ShowID: "", Season: 1, ChefID: ""}
}

// Home shows the list of shows. Focus is kept so that later transitions can refer to it.
func (s State) Home() (State, Effects) {
	s.View = ViewHome
	return s, Effects{ScrollToTop: true, ClearSearch: false}
}

// SelectShow focuses show and resets the season to the show's first season.
func (s State) SelectShow(show catalog.Show) (State, Effects) {
	s.View = ViewShow
	s.ShowID = show.ID
	s.Season = show.FirstSeason()
	return s, Effects{ScrollToTop: true, ClearSearch: false}
}

// SelectShowID is SelectShow for a show id that did not resolve. The season falls back to 1.
func (s State) SelectShowID(showID string) (State, Effects) {
	return s.SelectShow(catalog.Show{ID: showID}) //nolint:exhaustruct // only the id is known
}

// SelectSeason changes only the season whose roster is displayed.
func (s State) SelectSeason(number int) State {
	s.Season = number
	return s
}

// SelectChef opens the profile of the chef and dismisses any active search.
func (s State) SelectChef(chefID string) (State, Effects) {
	s.View = ViewProfile
	s.ChefID = chefID
	return s, Effects{ScrollToTop: true, ClearSearch: true}
}

// SelectAppearance jumps from a profile to the season the chef appeared in.
func (s State) SelectAppearance(showID string, season int) (State, Effects) {
	s.View = ViewShow
	s.ShowID = showID
	s.Season = season
	return s, Effects{ScrollToTop: true, ClearSearch: false}
}

// Back leaves a profile for the previously focused show, or home when no show was focused. From a show, back leads
// home.
func (s State) Back() (State, Effects) {
	if s.View == ViewProfile && s.ShowID != "" {
		s.View = ViewShow
		return s, Effects{ScrollToTop: false, ClearSearch: false}
	}
	return s.Home()
}
