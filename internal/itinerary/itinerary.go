// Package itinerary is the visitor's trip planner: an insertion-ordered set of restaurants keyed by
// [catalog.Restaurant.UID].
//
// Itinerary is a value. Every transition returns a new Itinerary and leaves the receiver untouched.
package itinerary

import (
	"slices"

	"github.com/myrjola/spoonmap/internal/catalog"
)

// Item is a snapshot of a restaurant and its owning chef taken when the restaurant was added to the trip.
type Item struct {
	UID        string
	Restaurant catalog.Restaurant
	ChefName   string
	ChefID     string
}

// Website is the restaurant's website URL, or an empty string when it has none.
func (i Item) Website() string {
	website, _ := i.Restaurant.Website()
	return website
}

// Itinerary is the ordered set of trip items plus the visibility of the trip panel.
type Itinerary struct {
	Items []Item
	// PanelOpen requests the trip panel to be shown. Adding an item opens it, removing never closes it.
	PanelOpen bool
}

// Len returns the number of items on the trip.
func (it Itinerary) Len() int {
	return len(it.Items)
}

// Contains reports whether an item with uid is on the trip.
func (it Itinerary) Contains(uid string) bool {
	return it.index(uid) >= 0
}

func (it Itinerary) index(uid string) int {
	return slices.IndexFunc(it.Items, func(item Item) bool {
		return item.UID == uid
	})
}

// Toggle removes the restaurant from the trip if present, otherwise appends a snapshot of it and opens the panel.
// added tells which of the two happened.
func (it Itinerary) Toggle(restaurant catalog.Restaurant, chef catalog.Chef) (next Itinerary, added bool) {
	uid := restaurant.UID()
	if it.Contains(uid) {
		return it.Remove(uid), false
	}
	items := make([]Item, 0, len(it.Items)+1)
	items = append(items, it.Items...)
	items = append(items, Item{
		UID:        uid,
		Restaurant: restaurant,
		ChefName:   chef.DisplayName(),
		ChefID:     chef.ID,
	})
	return Itinerary{Items: items, PanelOpen: true}, true
}

// Remove drops the item with uid. Removing an absent uid returns an equal itinerary.
func (it Itinerary) Remove(uid string) Itinerary {
	items := slices.DeleteFunc(slices.Clone(it.Items), func(item Item) bool {
		return item.UID == uid
	})
	return Itinerary{Items: items, PanelOpen: it.PanelOpen}
}

// OpenPanel shows the trip panel.
func (it Itinerary) OpenPanel() Itinerary {
	return Itinerary{Items: slices.Clone(it.Items), PanelOpen: true}
}

// ClosePanel hides the trip panel. The items are kept.
func (it Itinerary) ClosePanel() Itinerary {
	return Itinerary{Items: slices.Clone(it.Items), PanelOpen: false}
}

// Restaurants returns the restaurant snapshots in trip order.
func (it Itinerary) Restaurants() []catalog.Restaurant {
	restaurants := make([]catalog.Restaurant, len(it.Items))
	for i, item := range it.Items {
		restaurants[i] = item.Restaurant
	}
	return restaurants
}
