package identity

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/sqlite"
)

// Kind tells how a user signed in.
type Kind string

const (
	KindAnonymous Kind = "anonymous"
	KindToken     Kind = "token"
)

// User is a signed-in visitor.
type User struct {
	ID          string    `db:"id"`
	Kind        Kind      `db:"kind"`
	DisplayName string    `db:"display_name"`
	Created     time.Time `db:"created"`
	LastSeen    time.Time `db:"last_seen"`
}

// UserRepository stores users in SQLite.
type UserRepository struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewUserRepository(db *sqlite.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		readWrite: sqlx.NewDb(db.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(db.ReadOnly, "sqlite3"),
		logger:    logger.With(slog.String("source", "UserRepository")),
	}
}

// Upsert creates the user or refreshes last_seen of an existing one.
func (r *UserRepository) Upsert(ctx context.Context, user User) error {
	stmt := `INSERT INTO users (id, kind, display_name)
VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET last_seen    = strftime('%Y-%m-%dT%H:%M:%fZ'),
                               display_name = excluded.display_name`
	if _, err := r.readWrite.ExecContext(ctx, stmt, user.ID, user.Kind, user.DisplayName); err != nil {
		return errors.Wrap(err, "upsert user", slog.String("user_id", user.ID))
	}
	return nil
}

// userRow mirrors the users table where timestamps are stored as text.
type userRow struct {
	ID          string `db:"id"`
	Kind        Kind   `db:"kind"`
	DisplayName string `db:"display_name"`
	Created     string `db:"created"`
	LastSeen    string `db:"last_seen"`
}

// Get returns the user with id.
func (r *UserRepository) Get(ctx context.Context, id string) (User, error) {
	var row userRow
	stmt := `SELECT id, kind, display_name, created, last_seen FROM users WHERE id = ?`
	if err := r.readOnly.GetContext(ctx, &row, stmt, id); err != nil {
		return User{}, errors.Wrap(err, "get user", slog.String("user_id", id)) //nolint:exhaustruct // error
	}
	user := User{ID: row.ID, Kind: row.Kind, DisplayName: row.DisplayName} //nolint:exhaustruct // parsed below
	var err error
	if user.Created, err = time.Parse(time.RFC3339Nano, row.Created); err != nil {
		return User{}, errors.Wrap(err, "parse created", slog.String("created", row.Created)) //nolint:exhaustruct // error
	}
	if user.LastSeen, err = time.Parse(time.RFC3339Nano, row.LastSeen); err != nil {
		return User{}, errors.Wrap(err, "parse last_seen", slog.String("last_seen", row.LastSeen)) //nolint:exhaustruct // error
	}
	return user, nil
}
