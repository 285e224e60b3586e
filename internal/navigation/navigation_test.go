package navigation_test

import (
	"testing"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/navigation"
	"github.com/stretchr/testify/require"
)

func TestState_transitions(t *testing.T) {
	c := catalog.Default()
	ccw, ok := c.FindShow("ccw")
	require.True(t, ok)

	s := navigation.Initial()
	require.Equal(t, navigation.ViewHome, s.View)

	s, fx := s.SelectShow(ccw)
	require.Equal(t, navigation.State{View: navigation.ViewShow, ShowID: "ccw", Season: 1}, s)
	require.True(t, fx.ScrollToTop)

	s = s.SelectSeason(2)
	require.Equal(t, navigation.ViewShow, s.View, "season tabs do not change the view")
	require.Equal(t, 2, s.Season)

	s, fx = s.SelectChef("paik-jong-won")
	require.Equal(t, navigation.ViewProfile, s.View)
	require.Equal(t, "paik-jong-won", s.ChefID)
	require.True(t, fx.ClearSearch)

	s, _ = s.Back()
	require.Equal(t, navigation.State{View: navigation.ViewShow, ShowID: "ccw", Season: 2, ChefID: "paik-jong-won"}, s,
		"back returns to the focused show and season")

	s, _ = s.Back()
	require.Equal(t, navigation.ViewHome, s.View)
}

func TestState_SelectShow_resetsToFirstSeason(t *testing.T) {
	show := catalog.Show{ID: "late", Seasons: []catalog.Season{{Number: 4}, {Number: 3}}}
	s := navigation.Initial().SelectSeason(9)
	s, _ = s.SelectShow(show)
	require.Equal(t, 3, s.Season)

	s, _ = s.SelectShowID("unknown")
	require.Equal(t, navigation.State{View: navigation.ViewShow, ShowID: "unknown", Season: 1}, s)
}

func TestState_Back_withoutFocusedShow(t *testing.T) {
	s, fx := navigation.Initial().SelectChef("edward-lee")
	require.True(t, fx.ScrollToTop)
	s, _ = s.Back()
	require.Equal(t, navigation.ViewHome, s.View, "profile reached from search returns home")
}

func TestState_SelectAppearance(t *testing.T) {
	s, _ := navigation.Initial().SelectChef("edward-lee")
	s, _ = s.SelectAppearance("iron-chef", 1)
	require.Equal(t, navigation.State{View: navigation.ViewShow, ShowID: "iron-chef", Season: 1, ChefID: "edward-lee"}, s)
}
