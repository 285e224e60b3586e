package mappanel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/spoonmap/internal/errors"
)

// DefaultPollInterval is how often the Loader checks whether the entry point became callable.
const DefaultPollInterval = 100 * time.Millisecond

// Loader injects the capability's assets and waits for its entry point. It is meant to be shared by all panels of
// the process and is safe for concurrent use.
type Loader struct {
	capability   Capability
	injector     Injector
	pollInterval time.Duration
	logger       *slog.Logger

	mu       sync.Mutex
	injected bool
	ready    bool
}

// NewLoader creates a Loader that injects capability's assets into injector.
func NewLoader(capability Capability, injector Injector, pollInterval time.Duration, logger *slog.Logger) *Loader {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Loader{ //nolint:exhaustruct // zero values are fine
		capability:   capability,
		injector:     injector,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Ensure injects the stylesheet and script unless already present and blocks until the entry point is callable or
// ctx is done. Once ready, further calls return immediately.
func (l *Loader) Ensure(ctx context.Context) error {
	l.mu.Lock()
	if l.ready {
		l.mu.Unlock()
		return nil
	}
	l.inject(ctx)
	l.mu.Unlock()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()
	for {
		if l.capability.Ready() {
			l.mu.Lock()
			l.ready = true
			l.mu.Unlock()
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "wait for map capability entry point")
		case <-ticker.C:
		}
	}
}

// inject must be called with l.mu held.
func (l *Loader) inject(ctx context.Context) {
	if l.injected {
		return
	}
	assets := l.capability.Assets()
	if assets.Stylesheet != "" && !l.injector.HasStylesheet(assets.Stylesheet) {
		l.injector.InjectStylesheet(assets.Stylesheet)
		l.logger.LogAttrs(ctx, slog.LevelDebug, "injected map stylesheet", slog.String("href", assets.Stylesheet))
	}
	if assets.Script != "" && !l.injector.HasScript(assets.Script) {
		l.injector.InjectScript(assets.Script)
		l.logger.LogAttrs(ctx, slog.LevelDebug, "injected map script", slog.String("src", assets.Script))
	}
	l.injected = true
}

// IsReady reports whether a previous Ensure succeeded.
func (l *Loader) IsReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}
