// Package mappanel renders restaurants as markers on a map provided by an external, lazily loaded mapping
// capability.
//
// The capability is loaded once per process by a [Loader]. Each [Panel] mounts at most one live [Map] at a time,
// debounces mounting, and disposes the live map whenever its input changes or it is closed.
package mappanel

import (
	"github.com/myrjola/spoonmap/internal/catalog"
)

// Surface identifies the display area a map is bound to.
type Surface string

// View is the center and zoom level of a map.
type View struct {
	Center catalog.Coordinate `json:"center"`
	Zoom   int                `json:"zoom"`
}

// TileLayer is the raster tile source drawn below the markers.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
}

// Popup is the label shown when a marker is clicked.
type Popup struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Detail   string `json:"detail"`
}

// Marker is a restaurant position with its popup.
type Marker struct {
	Position catalog.Coordinate `json:"position"`
	Popup    Popup              `json:"popup"`
}

// Map is a live map instance. Implementations need not be safe for concurrent use, the Panel serialises access.
type Map interface {
	AddTileLayer(layer TileLayer)
	AddMarker(marker Marker)
	SetView(view View)
	Dispose()
}

// Capability is the external mapping library.
type Capability interface {
	// Assets are the stylesheet and script that must be present before the entry point becomes callable.
	Assets() Assets
	// Ready reports whether the entry point is callable.
	Ready() bool
	// NewMap constructs a map bound to surface.
	NewMap(surface Surface, view View) (Map, error)
}

// Assets are the URLs of the capability's stylesheet and script.
type Assets struct {
	Stylesheet string
	Script     string
}

// Injector is the document the capability's assets are injected into.
type Injector interface {
	HasStylesheet(href string) bool
	InjectStylesheet(href string)
	HasScript(src string) bool
	InjectScript(src string)
}
