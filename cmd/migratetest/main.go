// Command migratetest syncs the schema of a copy of the production database and checks that the visitor data
// survived. Point SPOONMAP_SQLITE_URL at the copy.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/sqlite"
	"github.com/myrjola/spoonmap/internal/testhelpers"
)

var errMigration = errors.NewSentinel("migrated database is incomplete")

// checkSchema verifies that the objects the web server relies on exist after the sync.
func checkSchema(ctx context.Context, db *sqlite.Database) error {
	for _, object := range []struct{ kind, name string }{
		{"table", "users"},
		{"table", "sessions"},
		{"index", "sessions_expiry_idx"},
	} {
		var count int
		row := db.ReadOnly.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_schema WHERE type = ? AND name = ?`, object.kind, object.name)
		if err := row.Scan(&count); err != nil {
			return errors.Wrap(err, "query schema", slog.String("name", object.name))
		}
		if count != 1 {
			return errors.Wrap(errMigration, "missing schema object",
				slog.String("type", object.kind), slog.String("name", object.name))
		}
	}
	return nil
}

// countVisitors returns the number of users. A copy of production without any is likely broken.
func countVisitors(ctx context.Context, db *sqlite.Database) (int, error) {
	var count int
	if err := db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	if count == 0 {
		return 0, errors.Wrap(errMigration, "no users")
	}
	return count, nil
}

func migrate(ctx context.Context, logger *slog.Logger, sqliteURL string) error {
	db, err := sqlite.NewDatabase(ctx, sqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", sqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "close database", errors.SlogError(closeErr))
		}
	}()

	if err = checkSchema(ctx, db); err != nil {
		return err
	}
	count, err := countVisitors(ctx, db)
	if err != nil {
		return err
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "visitors kept", slog.Int("users", count))
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:mnd // 5 seconds
	defer cancel()

	sqliteURL, ok := os.LookupEnv("SPOONMAP_SQLITE_URL")
	if !ok {
		logger.LogAttrs(ctx, slog.LevelError, "SPOONMAP_SQLITE_URL not set")
		os.Exit(1) //nolint:gocritic // nothing to clean up yet
	}
	if err := migrate(ctx, logger, sqliteURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "migration test failed", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
}
