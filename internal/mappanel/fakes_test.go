package mappanel

import (
	"sync"
	"time"

	"github.com/myrjola/spoonmap/internal/errors"
)

type fakeInjector struct {
	mu          sync.Mutex
	stylesheets []string
	scripts     []string
}

func (f *fakeInjector) HasStylesheet(href string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return contains(f.stylesheets, href)
}

func (f *fakeInjector) InjectStylesheet(href string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stylesheets = append(f.stylesheets, href)
}

func (f *fakeInjector) HasScript(src string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return contains(f.scripts, src)
}

func (f *fakeInjector) InjectScript(src string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, src)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeMap struct {
	surface  Surface
	view     View
	tiles    []TileLayer
	markers  []Marker
	disposed bool
}

func (m *fakeMap) AddTileLayer(layer TileLayer) { m.tiles = append(m.tiles, layer) }
func (m *fakeMap) AddMarker(marker Marker)      { m.markers = append(m.markers, marker) }
func (m *fakeMap) SetView(view View)            { m.view = view }
func (m *fakeMap) Dispose()                     { m.disposed = true }

var errConstruct = errors.NewSentinel("surface has no size")

type fakeCapability struct {
	mu         sync.Mutex
	readyAfter int
	checks     int
	fail       bool
	maps       []*fakeMap
}

func (c *fakeCapability) Assets() Assets {
	return Assets{Stylesheet: "https://maps.test/map.css", Script: "https://maps.test/map.js"}
}

func (c *fakeCapability) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks++
	return c.checks > c.readyAfter
}

func (c *fakeCapability) NewMap(surface Surface, view View) (Map, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errConstruct
	}
	m := &fakeMap{surface: surface, view: view} //nolint:exhaustruct // filled by the panel
	c.maps = append(c.maps, m)
	return m, nil
}

func (c *fakeCapability) live() []*fakeMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	var live []*fakeMap
	for _, m := range c.maps {
		if !m.disposed {
			live = append(live, m)
		}
	}
	return live
}

// manualClock runs scheduled callbacks only when fired by the test.
type manualClock struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *manualClock) afterFunc(d time.Duration, f func()) timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, f: f, stopped: false}
	c.delays = append(c.delays, d)
	c.pending = append(c.pending, t)
	return t
}

// fire runs every timer that has not been stopped and returns how many ran.
func (c *manualClock) fire() int {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.pending {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.pending = nil
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}
