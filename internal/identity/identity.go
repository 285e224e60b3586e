// Package identity signs visitors in either anonymously or with a pre-issued token. Nothing in the application is
// gated on the result; the user id is only kept in the session and recorded in the users table.
package identity

import (
	"context"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/myrjola/spoonmap/internal/errors"
)

var (
	ErrInvalidToken = errors.NewSentinel("invalid sign-in token")
	ErrNoSecret     = errors.NewSentinel("token signing secret not configured")
)

type userStore interface {
	Upsert(ctx context.Context, user User) error
}

// Service signs users in. The user record is written in the background so that sign-in never blocks a request.
type Service struct {
	users  userStore
	secret []byte
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewService creates a Service that verifies HS256 tokens signed with secret.
func NewService(users userStore, secret string, logger *slog.Logger) *Service {
	return &Service{ //nolint:exhaustruct // zero WaitGroup
		users:  users,
		secret: []byte(secret),
		logger: logger.With(slog.String("source", "identity")),
	}
}

// SignIn signs in with token, or anonymously when token is empty or invalid. It always returns a user.
func (s *Service) SignIn(ctx context.Context, token string) User {
	user := User{ID: uuid.NewString(), Kind: KindAnonymous} //nolint:exhaustruct // timestamps set by the database
	if token != "" {
		if tokenUser, err := s.verify(token); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "token sign-in failed, signing in anonymously",
				errors.SlogError(err))
		} else {
			user = tokenUser
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bgCtx := context.WithoutCancel(ctx)
		if err := s.users.Upsert(bgCtx, user); err != nil {
			s.logger.LogAttrs(bgCtx, slog.LevelError, "failed to record user", errors.SlogError(err))
			return
		}
		s.logger.LogAttrs(bgCtx, slog.LevelDebug, "signed in",
			slog.String("user_id", user.ID), slog.String("kind", string(user.Kind)))
	}()
	return user
}

// Wait blocks until background user writes have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) verify(token string) (User, error) {
	if len(s.secret) == 0 {
		return User{}, ErrNoSecret //nolint:exhaustruct // error
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrap(ErrInvalidToken, "unexpected signing method", slog.Any("alg", t.Header["alg"]))
		}
		return s.secret, nil
	})
	if err != nil {
		return User{}, errors.Wrap(errors.Join(ErrInvalidToken, err), "parse token") //nolint:exhaustruct // error
	}
	if !parsed.Valid {
		return User{}, ErrInvalidToken //nolint:exhaustruct // error
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return User{}, errors.Wrap(ErrInvalidToken, "missing subject") //nolint:exhaustruct // error
	}
	name, _ := claims["name"].(string)
	return User{ID: subject, Kind: KindToken, DisplayName: name}, nil //nolint:exhaustruct // timestamps
}

// IssueToken signs a token for subject. It is used by the CLI to mint tokens for SPOONMAP_INITIAL_AUTH_TOKEN.
func IssueToken(secret, subject, name string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	claims := jwt.MapClaims{"sub": subject}
	if name != "" {
		claims["name"] = name
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}
