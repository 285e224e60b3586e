package mappanel

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/errors"
)

// DefaultMountDelay gives the surface time to attain its final size before the map measures it.
const DefaultMountDelay = 200 * time.Millisecond

// LifecycleState is where a Panel is in its lifecycle.
type LifecycleState string

const (
	StateUnloaded LifecycleState = "unloaded"
	StateLoading  LifecycleState = "loading"
	// StateReady means the capability is loaded but no map is mounted. A panel whose map failed to construct stays
	// here and displays as initializing.
	StateReady    LifecycleState = "ready"
	StateMounted  LifecycleState = "mounted"
	StateTornDown LifecycleState = "torn down"
)

// ErrClosed is returned by operations on a closed Panel.
var ErrClosed = errors.NewSentinel("map panel closed")

// timer is the subset of *time.Timer the panel uses.
type timer interface {
	Stop() bool
}

// afterFunc schedules f after d, see [time.AfterFunc].
type afterFunc func(d time.Duration, f func()) timer

// Option configures a Panel.
type Option func(*Panel)

// WithMountDelay overrides [DefaultMountDelay]. Non-positive delays mount on the next timer tick.
func WithMountDelay(d time.Duration) Option {
	return func(p *Panel) {
		p.mountDelay = max(d, 0)
	}
}

// WithTileLayer sets the tile layer added to every mounted map.
func WithTileLayer(layer TileLayer) Option {
	return func(p *Panel) {
		p.tiles = layer
	}
}

// WithLogger sets the logger used for load and construction failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Panel) {
		p.logger = logger
	}
}

func withAfterFunc(f afterFunc) Option {
	return func(p *Panel) {
		p.afterFunc = f
	}
}

// Panel displays a set of restaurants on a map. It is safe for concurrent use; the mount timer fires on its own
// goroutine.
type Panel struct {
	loader     *Loader
	capability Capability
	mountDelay time.Duration
	tiles      TileLayer
	logger     *slog.Logger
	afterFunc  afterFunc

	mu          sync.Mutex
	state       LifecycleState
	surface     Surface
	restaurants []catalog.Restaurant
	pending     timer
	// generation invalidates timer callbacks that fire after teardown.
	generation uint64
	// settled is closed when the pending mount attempt finishes or is cancelled.
	settled chan struct{}
	live    Map
}

// New creates an unloaded Panel.
func New(loader *Loader, capability Capability, opts ...Option) *Panel {
	p := &Panel{ //nolint:exhaustruct // zero values are fine
		loader:     loader,
		capability: capability,
		mountDelay: DefaultMountDelay,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
		state: StateUnloaded,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load ensures the capability is loaded and schedules a mount when a surface is attached.
func (p *Panel) Load(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case StateTornDown:
		p.mu.Unlock()
		return ErrClosed
	case StateReady, StateMounted:
		p.mu.Unlock()
		return nil
	case StateUnloaded, StateLoading:
	}
	p.state = StateLoading
	p.mu.Unlock()

	if err := p.loader.Ensure(ctx); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "map capability failed to load", errors.SlogError(err))
		return errors.Wrap(err, "load map capability")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StateTornDown:
		return ErrClosed
	case StateReady, StateMounted:
		// A concurrent Load got here first and scheduled the mount.
		return nil
	case StateUnloaded, StateLoading:
	}
	p.state = StateReady
	p.scheduleLocked()
	return nil
}

// Attach binds the panel to surface and schedules a mount.
func (p *Panel) Attach(surface Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateTornDown {
		return
	}
	p.teardownLocked()
	p.surface = surface
	p.scheduleLocked()
}

// Detach releases the surface and disposes the live map.
func (p *Panel) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateTornDown {
		return
	}
	p.teardownLocked()
	p.surface = ""
}

// SetRestaurants replaces the displayed restaurants. The live map is disposed and a new one is mounted after the
// mount delay.
func (p *Panel) SetRestaurants(restaurants []catalog.Restaurant) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateTornDown {
		return
	}
	p.teardownLocked()
	p.restaurants = append([]catalog.Restaurant(nil), restaurants...)
	p.scheduleLocked()
}

// ResetView recenters the live map on its home view. It does nothing when no map is mounted or there are no
// restaurants to center on.
func (p *Panel) ResetView() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live == nil || len(p.restaurants) == 0 {
		return
	}
	p.live.SetView(HomeView(p.restaurants))
}

// Close cancels any pending mount and disposes the live map. A closed panel cannot be reused.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardownLocked()
	p.state = StateTornDown
}

// State returns the current lifecycle state.
func (p *Panel) State() LifecycleState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Interactive reports whether a map is mounted.
func (p *Panel) Interactive() bool {
	return p.State() == StateMounted
}

// Live returns the mounted map.
func (p *Panel) Live() (Map, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live, p.live != nil
}

// Await blocks until no mount is pending and returns the resulting state.
func (p *Panel) Await(ctx context.Context) (LifecycleState, error) {
	for {
		p.mu.Lock()
		settled := p.settled
		state := p.state
		p.mu.Unlock()
		if settled == nil {
			return state, nil
		}
		select {
		case <-ctx.Done():
			return state, errors.Wrap(ctx.Err(), "await map mount")
		case <-settled:
		}
	}
}

// scheduleLocked arms the mount timer when the capability is loaded and a surface is attached.
func (p *Panel) scheduleLocked() {
	if p.state != StateReady || p.surface == "" {
		return
	}
	p.generation++
	generation := p.generation
	p.settled = make(chan struct{})
	p.pending = p.afterFunc(p.mountDelay, func() {
		p.mount(generation)
	})
}

// teardownLocked cancels the pending mount and disposes the live map.
func (p *Panel) teardownLocked() {
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	p.generation++
	p.settleLocked()
	if p.live != nil {
		p.live.Dispose()
		p.live = nil
	}
	if p.state == StateMounted {
		p.state = StateReady
	}
}

func (p *Panel) settleLocked() {
	if p.settled != nil {
		close(p.settled)
		p.settled = nil
	}
}

func (p *Panel) mount(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if generation != p.generation || p.state != StateReady {
		return
	}
	p.pending = nil
	defer p.settleLocked()

	if p.live != nil {
		p.live.Dispose()
		p.live = nil
	}
	m, err := p.capability.NewMap(p.surface, HomeView(p.restaurants))
	if err != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelError, "construct map",
			slog.String("surface", string(p.surface)), errors.SlogError(err))
		return
	}
	if p.tiles.URLTemplate != "" {
		m.AddTileLayer(p.tiles)
	}
	for _, marker := range Markers(p.restaurants) {
		m.AddMarker(marker)
	}
	p.live = m
	p.state = StateMounted
}
