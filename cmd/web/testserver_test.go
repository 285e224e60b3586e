package main

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/spoonmap/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SPOONMAP_ADDR":
		return "localhost:0", true
	case "SPOONMAP_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

// startTestServer starts a server with its own in-memory database and returns a client with an empty cookie jar.
// The server is stopped when the test ends.
func startTestServer(t *testing.T) *e2etest.Client {
	t.Helper()
	server, err := e2etest.StartServer(context.Background(), io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, server.Stop())
	})
	return server.Client()
}
