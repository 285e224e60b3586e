package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spoonmap/internal/e2etest"
	"github.com/myrjola/spoonmap/internal/leaflet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthy(t *testing.T) {
	client := startTestServer(t)
	resp, err := client.Get(context.Background(), "/api/healthy")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status string `json:"status"`
		Shows  int    `json:"shows"`
		Chefs  int    `json:"chefs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Shows)
	assert.Equal(t, 8, health.Chefs)
}

func TestHome(t *testing.T) {
	client := startTestServer(t)
	doc, err := client.GetDoc(context.Background(), "/")
	require.NoError(t, err)

	shows := doc.Find("a.show-card")
	require.Equal(t, 2, shows.Length())
	assert.Equal(t, "/shows/ccw", shows.First().AttrOr("href", ""))
	assert.Equal(t, "Culinary Class Wars", strings.TrimSpace(shows.First().Find("h2").Text()))
	assert.Equal(t, "0", doc.Find("#trip-count").Text())
	assert.Equal(t, 0, doc.Find("#trip").Length(), "trip sidebar starts closed")
}

func TestShow(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	tests := []struct {
		name       string
		path       string
		seasonName string
		chefIDs    []string
	}{
		{"first season by default", "/shows/ccw", "The Beginning",
			[]string{"napoli-matfia", "edward-lee", "triple-star", "queen-of-dim-sum"}},
		{"season query", "/shows/ccw?season=2", "The Return",
			[]string{"paik-jong-won", "anh-sung-jae", "tbd-white-spoon"}},
		{"unknown season", "/shows/ccw?season=9", "Competition", nil},
		{"season jump", "/shows/iron-chef/seasons/1", "Iron Legends", []string{"curtis-stone", "edward-lee"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := client.GetDoc(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.seasonName, strings.TrimSpace(doc.Find(".season-name").Text()))
			var ids []string
			doc.Find(".roster .chef-card").Each(func(_ int, s *goquery.Selection) {
				ids = append(ids, s.AttrOr("data-chef-id", ""))
			})
			assert.Equal(t, tt.chefIDs, ids)
		})
	}
}

func TestShowClassTags(t *testing.T) {
	client := startTestServer(t)
	doc, err := client.GetDoc(context.Background(), "/shows/ccw")
	require.NoError(t, err)

	tag := doc.Find(`.chef-card[data-chef-id="napoli-matfia"] span.tag`)
	require.Equal(t, 1, tag.Length())
	assert.True(t, tag.HasClass("tag-black-spoon"))
	assert.Equal(t, 0, doc.Find(".roster span.badge").Length(), "ranks are hidden by default")
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	for _, path := range []string{"/chefs/nobody", "/shows/nothing", "/shows/ccw/seasons/one", "/no/such/page"} {
		t.Run(path, func(t *testing.T) {
			doc, status, err := client.GetDocStatus(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, "Not found", doc.Find("h1").Text())
		})
	}
}

func TestTrip(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)
	toggle := `.restaurant[data-uid="e1"] form[action="/trip/toggle"]`

	doc, err := client.SubmitForm(ctx, "/chefs/edward-lee", toggle)
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Find("#trip-count").Text())
	require.Equal(t, 1, doc.Find("#trip").Length(), "adding opens the trip sidebar")
	item := doc.Find(`#trip .trip-item[data-uid="e1"]`)
	require.Equal(t, 1, item.Length())
	assert.Equal(t, "610 Magnolia", item.Find("strong").Text())
	assert.Equal(t, "Edward Lee", item.Find("a.chef").Text())
	assert.Equal(t, "https://610magnolia.com", item.Find("a.website").AttrOr("href", ""))
	assert.Contains(t, doc.Find(toggle+" button").Text(), "Remove from trip")

	// The redirect lands back on the profile.
	assert.Equal(t, "Edward Lee", doc.Find("h1").Text())

	doc, err = client.SubmitForm(ctx, "/chefs/edward-lee", toggle)
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Find("#trip-count").Text())
	assert.Equal(t, 1, doc.Find("#trip").Length(), "removing leaves the sidebar open")

	doc, err = client.SubmitForm(ctx, "/chefs/edward-lee", `#trip form[action="/trip/panel"]`)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#trip").Length())
}

func TestTripRemove(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	_, err := client.SubmitForm(ctx, "/chefs/edward-lee", `.restaurant[data-uid="e1"] form`)
	require.NoError(t, err)
	doc, err := client.SubmitForm(ctx, "/chefs/edward-lee", `.restaurant[data-uid="e2"] form`)
	require.NoError(t, err)
	require.Equal(t, "2", doc.Find("#trip-count").Text())

	doc, err = client.SubmitForm(ctx, "/", `#trip .trip-item[data-uid="e1"] form`)
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Find("#trip-count").Text())
	var uids []string
	doc.Find("#trip .trip-item").Each(func(_ int, s *goquery.Selection) {
		uids = append(uids, s.AttrOr("data-uid", ""))
	})
	assert.Equal(t, []string{"e2"}, uids)
	assert.Equal(t, "All shows", doc.Find("h1").Text())
}

func TestTripUnknownRestaurant(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	doc, err := client.GetDoc(ctx, "/chefs/edward-lee")
	require.NoError(t, err)
	form := doc.Find(`.restaurant[data-uid="e1"] form`)
	form.Find(`input[name="restaurant_uid"]`).SetAttr("value", "v1")
	_, err = client.Submit(ctx, form)
	require.ErrorIs(t, err, e2etest.ErrUnexpectedStatus, "v1 belongs to another chef")
}

func TestCSRF(t *testing.T) {
	client := startTestServer(t)
	_, err := client.PostForm(context.Background(), "/spoilers/toggle", url.Values{"return_to": {"/"}})
	require.ErrorIs(t, err, e2etest.ErrUnexpectedStatus)
}

func TestSpoilers(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	doc, err := client.GetDoc(ctx, "/chefs/edward-lee")
	require.NoError(t, err)
	results := doc.Find(".appearance .result")
	require.Equal(t, 2, results.Length())
	assert.Equal(t, results.Length(), results.Filter(".blurred").Length(), "results are blurred while hidden")
	assert.Equal(t, 0, doc.Find(".profile span.badge").Length(), "rank is left out while hidden")
	assert.Equal(t, "Iron Chef: Quest for a Legend", doc.Find(`.appearance[data-show-id="iron-chef"] .show-title`).Text())

	doc, err = client.SubmitForm(ctx, "/chefs/edward-lee", `form[action="/spoilers/toggle"]`)
	require.NoError(t, err)
	results = doc.Find(".appearance .result")
	require.Equal(t, 2, results.Length())
	assert.Equal(t, 0, results.Filter(".blurred").Length())
	assert.Equal(t, "Runner-up", results.First().Text())
	assert.True(t, results.First().HasClass("badge-runner-up"))
	ironChef := doc.Find(`.appearance[data-show-id="iron-chef"] .result`)
	assert.Equal(t, "Winner", ironChef.Text())
	assert.True(t, ironChef.HasClass("badge-winner"))
	assert.Equal(t, "Runner-up", doc.Find(".profile span.badge").Text())

	// The preference sticks for the rest of the session.
	doc, err = client.GetDoc(ctx, "/shows/ccw")
	require.NoError(t, err)
	assert.Equal(t, "Winner", doc.Find(`.chef-card[data-chef-id="napoli-matfia"] span.badge`).Text())
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	doc, err := client.GetPartial(ctx, "/search?q=LEE")
	require.NoError(t, err)
	overlay := doc.Find("#search-results")
	require.Equal(t, 1, overlay.Length())
	assert.False(t, overlay.HasClass("hidden"))
	assert.Equal(t, 0, doc.Find("header").Length(), "partials leave out the layout")
	var ids []string
	overlay.Find(".chef-card").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-chef-id", ""))
	})
	assert.Equal(t, []string{"edward-lee"}, ids)

	doc, err = client.GetPartial(ctx, "/search?q=zzz")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#search-results .empty").Text(), `No chefs match "zzz"`)

	doc, err = client.GetPartial(ctx, "/search?q=")
	require.NoError(t, err)
	assert.True(t, doc.Find("#search-results").HasClass("hidden"))

	doc, err = client.GetDoc(ctx, "/search?q=napoli")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".results .chef-card").Length())
	assert.Equal(t, "napoli", doc.Find(`input[name="q"]`).AttrOr("value", ""))
}

func TestSearchClearedBySelectingChef(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	_, err := client.GetPartial(ctx, "/search?q=lee")
	require.NoError(t, err)
	doc, err := client.GetDoc(ctx, "/chefs/edward-lee")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Find(`input[name="q"]`).AttrOr("value", ""))
	assert.True(t, doc.Find("#search-results").HasClass("hidden"))
}

func TestBack(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	_, err := client.GetDoc(ctx, "/shows/ccw?season=2")
	require.NoError(t, err)
	_, err = client.GetDoc(ctx, "/chefs/paik-jong-won")
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/back")
	require.NoError(t, err)
	assert.Equal(t, "Culinary Class Wars", doc.Find("h1").Text())
	assert.Equal(t, "The Return", strings.TrimSpace(doc.Find(".season-name").Text()), "back keeps the season")

	doc, err = client.GetDoc(ctx, "/back")
	require.NoError(t, err)
	assert.Equal(t, "All shows", doc.Find("h1").Text())
}

func TestBackFromProfileWithoutShow(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.GetDoc(ctx, "/chefs/edward-lee")
	require.NoError(t, err)
	doc, err := client.GetDoc(ctx, "/back")
	require.NoError(t, err)
	assert.Equal(t, "All shows", doc.Find("h1").Text())
}

func TestProfileMap(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(`link[href="`+leaflet.StylesheetURL+`"]`).Length(), "map assets load on demand")

	doc, err = client.GetDoc(ctx, "/chefs/edward-lee")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(`link[href="`+leaflet.StylesheetURL+`"]`).Length())
	assert.Equal(t, 1, doc.Find(`script[src="`+leaflet.ScriptURL+`"]`).Length())

	surface := doc.Find("div.map[data-map]")
	require.Equal(t, 1, surface.Length())
	assert.Equal(t, "map-edward-lee", surface.AttrOr("id", ""))

	var mapDoc leaflet.Document
	require.NoError(t, json.Unmarshal([]byte(doc.Find("script[data-map-config]").Text()), &mapDoc))
	assert.Equal(t, "map-edward-lee", mapDoc.Surface)
	assert.Equal(t, 3, mapDoc.View.Zoom)
	assert.InDelta(t, 38.2291, mapDoc.View.Center.Lat, 1e-9)
	assert.Equal(t, mapDoc.View, mapDoc.Home)
	require.Len(t, mapDoc.Markers, 2)
	assert.Equal(t, "Nami", mapDoc.Markers[1].Popup.Title)
	assert.Equal(t, "Korean BBQ", mapDoc.Markers[1].Popup.Detail)
	require.Len(t, mapDoc.Tiles, 1)
	assert.Equal(t, leaflet.DefaultTileLayer.URLTemplate, mapDoc.Tiles[0].URLTemplate)

	// The assets stay in the head once injected.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(`link[href="`+leaflet.StylesheetURL+`"]`).Length())
}

func TestSecureHeaders(t *testing.T) {
	client := startTestServer(t)
	resp, err := client.Get(context.Background(), "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	csp := resp.Header.Get("Content-Security-Policy")
	assert.Contains(t, csp, "'strict-dynamic'")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "deny", resp.Header.Get("X-Frame-Options"))
}

func TestPlanTripFromRoster(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	doc, err := client.GetDoc(ctx, "/shows/ccw")
	require.NoError(t, err)
	chefPath := doc.Find(`.roster .chef-card[data-chef-id="napoli-matfia"]`).AttrOr("href", "")
	require.Equal(t, "/chefs/napoli-matfia", chefPath)

	toggle := `.restaurant[data-uid="v1"] form[action="/trip/toggle"]`
	doc, err = client.SubmitForm(ctx, chefPath, toggle)
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Find("#trip-count").Text())
	assert.Equal(t, 1, doc.Find("#trip").Length())

	doc, err = client.SubmitForm(ctx, chefPath, toggle)
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Find("#trip-count").Text())
}

func TestTripWebsiteLink(t *testing.T) {
	ctx := context.Background()
	client := startTestServer(t)

	toggle := `.restaurant[data-uid="s1"] form[action="/trip/toggle"]`
	doc, err := client.SubmitForm(ctx, "/chefs/tbd-white-spoon", toggle)
	require.NoError(t, err)
	item := doc.Find(`#trip .trip-item[data-uid="s1"]`)
	require.Equal(t, 1, item.Length())
	assert.Equal(t, 0, item.Find("a.website").Length(), "restaurants without a website get no link")
}
