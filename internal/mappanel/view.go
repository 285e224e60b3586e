package mappanel

import (
	"github.com/myrjola/spoonmap/internal/catalog"
)

const (
	// WideZoom shows several restaurants that may be far apart.
	WideZoom = 3
	// CloseZoom shows the streets around a single restaurant.
	CloseZoom = 13
)

// DefaultCenter is used when no restaurant has a coordinate.
var DefaultCenter = catalog.Coordinate{Lat: 37.5665, Lng: 126.9780} //nolint:gochecknoglobals // constant value

// HomeView is the view a panel mounts with and resets to.
//
// The map is centered on the first restaurant that has a coordinate, or [DefaultCenter]. More than one restaurant
// uses [WideZoom], otherwise [CloseZoom].
func HomeView(restaurants []catalog.Restaurant) View {
	center := DefaultCenter
	for _, r := range restaurants {
		if r.Coords != nil {
			center = *r.Coords
			break
		}
	}
	zoom := CloseZoom
	if len(restaurants) > 1 {
		zoom = WideZoom
	}
	return View{Center: center, Zoom: zoom}
}

// Markers returns one marker per restaurant with a coordinate, in input order.
func Markers(restaurants []catalog.Restaurant) []Marker {
	markers := make([]Marker, 0, len(restaurants))
	for _, r := range restaurants {
		if r.Coords == nil {
			continue
		}
		markers = append(markers, Marker{
			Position: *r.Coords,
			Popup: Popup{
				Title:    r.Name,
				Location: r.Location,
				Detail:   r.Highlight(),
			},
		})
	}
	return markers
}
