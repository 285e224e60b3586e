package contexthelpers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/spoonmap/internal/contexthelpers"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/shows/ccw?season=2", nil)
	r = contexthelpers.SetSignedInUserID(r, "user-1")
	r = contexthelpers.SetCurrentPath(r, r.URL.RequestURI())
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")

	ctx := r.Context()
	assert.Equal(t, "user-1", contexthelpers.SignedInUserID(ctx))
	assert.Equal(t, "/shows/ccw?season=2", contexthelpers.CurrentPath(ctx))
	assert.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	assert.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
}

func TestMissingValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, contexthelpers.SignedInUserID(ctx))
	assert.Empty(t, contexthelpers.CurrentPath(ctx))
	assert.Empty(t, contexthelpers.CSRFToken(ctx))
	assert.Empty(t, contexthelpers.CSPNonce(ctx))
}
