// Package leaflet is the Leaflet implementation of the map panel capability. Maps are built server-side as a
// [Document] that ui/static/map.js hands to Leaflet in the browser.
package leaflet

import (
	"sync"

	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/mappanel"
)

const (
	Version       = "1.9.4"
	StylesheetURL = "https://unpkg.com/leaflet@" + Version + "/dist/leaflet.css"
	ScriptURL     = "https://unpkg.com/leaflet@" + Version + "/dist/leaflet.js"
)

// DefaultTileLayer is the CARTO dark basemap.
var DefaultTileLayer = mappanel.TileLayer{ //nolint:gochecknoglobals // constant value
	URLTemplate: "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
	Attribution: `&copy; OpenStreetMap contributors &copy; CARTO`,
}

var (
	ErrNoSurface = errors.NewSentinel("map surface not set")
	ErrNotLoaded = errors.NewSentinel("leaflet script not loaded")
)

// Head is the set of stylesheets and scripts shared by every rendered page. It is safe for concurrent use.
type Head struct {
	mu          sync.RWMutex
	stylesheets []string
	scripts     []string
}

// NewHead creates an empty Head.
func NewHead() *Head {
	return &Head{} //nolint:exhaustruct // empty
}

func (h *Head) HasStylesheet(href string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return contains(h.stylesheets, href)
}

func (h *Head) InjectStylesheet(href string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !contains(h.stylesheets, href) {
		h.stylesheets = append(h.stylesheets, href)
	}
}

func (h *Head) HasScript(src string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return contains(h.scripts, src)
}

func (h *Head) InjectScript(src string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !contains(h.scripts, src) {
		h.scripts = append(h.scripts, src)
	}
}

// Stylesheets returns the injected stylesheet URLs in injection order.
func (h *Head) Stylesheets() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.stylesheets...)
}

// Scripts returns the injected script URLs in injection order.
func (h *Head) Scripts() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.scripts...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Capability builds Leaflet map documents. Its entry point is callable once the script is in the Head.
type Capability struct {
	head *Head
}

// NewCapability creates a Capability whose readiness is read from head.
func NewCapability(head *Head) *Capability {
	return &Capability{head: head}
}

func (c *Capability) Assets() mappanel.Assets {
	return mappanel.Assets{Stylesheet: StylesheetURL, Script: ScriptURL}
}

func (c *Capability) Ready() bool {
	return c.head.HasScript(ScriptURL)
}

func (c *Capability) NewMap(surface mappanel.Surface, view mappanel.View) (mappanel.Map, error) {
	if surface == "" {
		return nil, ErrNoSurface
	}
	if !c.Ready() {
		return nil, ErrNotLoaded
	}
	return &Map{ //nolint:exhaustruct // layers added later
		doc: Document{
			Surface:         string(surface),
			View:            view,
			Home:            view,
			ZoomControl:     true,
			ScrollWheelZoom: true,
			Dragging:        true,
		},
	}, nil
}

// Document is the serialised map read by map.js.
type Document struct {
	Surface         string               `json:"surface"`
	View            mappanel.View        `json:"view"`
	Home            mappanel.View        `json:"home"`
	Tiles           []mappanel.TileLayer `json:"tiles"`
	Markers         []mappanel.Marker    `json:"markers"`
	ZoomControl     bool                 `json:"zoomControl"`
	ScrollWheelZoom bool                 `json:"scrollWheelZoom"`
	Dragging        bool                 `json:"dragging"`
}

// Map is a Leaflet map under construction.
type Map struct {
	mu       sync.Mutex
	doc      Document
	disposed bool
}

func (m *Map) AddTileLayer(layer mappanel.TileLayer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Tiles = append(m.doc.Tiles, layer)
}

func (m *Map) AddMarker(marker mappanel.Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Markers = append(m.doc.Markers, marker)
}

func (m *Map) SetView(view mappanel.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.View = view
}

func (m *Map) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
	m.doc.Tiles = nil
	m.doc.Markers = nil
}

// Document returns a copy of the map document. Disposed maps return false.
func (m *Map) Document() (Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return Document{}, false //nolint:exhaustruct // disposed
	}
	doc := m.doc
	doc.Tiles = append([]mappanel.TileLayer(nil), m.doc.Tiles...)
	doc.Markers = append([]mappanel.Marker(nil), m.doc.Markers...)
	return doc, true
}
