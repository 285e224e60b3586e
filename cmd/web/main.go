package main

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/envstruct"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/identity"
	"github.com/myrjola/spoonmap/internal/leaflet"
	"github.com/myrjola/spoonmap/internal/logging"
	"github.com/myrjola/spoonmap/internal/mappanel"
	"github.com/myrjola/spoonmap/internal/pprofserver"
	"github.com/myrjola/spoonmap/internal/sqlite"
)

type application struct {
	logger           *slog.Logger
	catalog          *catalog.Catalog
	sessionManager   *scs.SessionManager
	identity         *identity.Service
	initialAuthToken string
	templates        map[string]*template.Template
	htmx             *htmx.HTMX
	mapHead          *leaflet.Head
	mapLoader        *mappanel.Loader
	mapCapability    *leaflet.Capability
	mapTiles         mappanel.TileLayer
	mapMountDelay    time.Duration
}

type config struct {
	// Addr is the address the HTTP server listens on. Use "localhost:0" for a random port.
	Addr string `env:"SPOONMAP_ADDR" envDefault:"localhost:4000"`
	// PprofPort enables the pprof server on the IPv6 loopback address when set, e.g. ":6060".
	PprofPort string `env:"SPOONMAP_PPROF_PORT" envDefault:""`
	// SqliteURL is the path to the SQLite database file or ":memory:".
	SqliteURL string `env:"SPOONMAP_SQLITE_URL" envDefault:"./spoonmap.sqlite3"`
	// CatalogPath replaces the bundled catalog when set.
	CatalogPath string `env:"SPOONMAP_CATALOG_PATH" envDefault:""`
	// MapMountDelay delays building the restaurant map. The browser measures the map surface itself, so the server
	// does not need to wait by default.
	MapMountDelay time.Duration `env:"SPOONMAP_MAP_MOUNT_DELAY" envDefault:"0s"`
	// MapTileURL overrides the tile URL template of the default CARTO basemap.
	MapTileURL string `env:"SPOONMAP_MAP_TILE_URL" envDefault:""`
	// InitialAuthToken is a pre-issued token used to sign visitors in. Visitors are anonymous without it.
	InitialAuthToken string `env:"SPOONMAP_INITIAL_AUTH_TOKEN" envDefault:""`
	// TokenSecret verifies InitialAuthToken.
	TokenSecret     string        `env:"SPOONMAP_TOKEN_SECRET" envDefault:""`
	SessionLifetime time.Duration `env:"SPOONMAP_SESSION_LIFETIME" envDefault:"12h"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
		cat *catalog.Catalog
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.CatalogPath == "" {
		cat = catalog.Default()
	} else if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
		return errors.Wrap(err, "load catalog", slog.String("path", cfg.CatalogPath))
	}
	for _, problem := range cat.Validate() {
		logger.LogAttrs(ctx, slog.LevelWarn, "catalog problem", slog.String("problem", problem.String()))
	}

	if cfg.PprofPort != "" {
		pprofserver.Launch(ctx, cfg.PprofPort, logger)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // daily
	defer sessionStore.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = sessionStore
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true

	users := identity.NewUserRepository(db, logger)
	identityService := identity.NewService(users, cfg.TokenSecret, logger)
	defer identityService.Wait()

	tiles := leaflet.DefaultTileLayer
	if cfg.MapTileURL != "" {
		tiles.URLTemplate = cfg.MapTileURL
	}
	mapHead := leaflet.NewHead()
	mapCapability := leaflet.NewCapability(mapHead)

	var templates map[string]*template.Template
	if templates, err = parseTemplates(); err != nil {
		return errors.Wrap(err, "parse templates")
	}

	app := application{
		logger:           logger,
		catalog:          cat,
		sessionManager:   sessionManager,
		identity:         identityService,
		initialAuthToken: cfg.InitialAuthToken,
		templates:        templates,
		htmx:             htmx.New(),
		mapHead:          mapHead,
		mapLoader:        mappanel.NewLoader(mapCapability, mapHead, mappanel.DefaultPollInterval, logger),
		mapCapability:    mapCapability,
		mapTiles:         tiles,
		mapMountDelay:    cfg.MapMountDelay,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
