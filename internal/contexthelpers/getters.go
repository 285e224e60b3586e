package contexthelpers

import (
	"context"
)

// lookup returns the string stored at key or an empty string.
func lookup(ctx context.Context, key contextKey) string {
	value, _ := ctx.Value(key).(string)
	return value
}

// SignedInUserID returns the identity of the visitor or an empty string when sign-in has not happened (yet).
func SignedInUserID(ctx context.Context) string {
	return lookup(ctx, signedInUserIDContextKey)
}

// CurrentPath is the request URI including the query, used as the return_to target of forms.
func CurrentPath(ctx context.Context) string {
	return lookup(ctx, currentPathContextKey)
}

func CSRFToken(ctx context.Context) string {
	return lookup(ctx, csrfTokenContextKey)
}

func CSPNonce(ctx context.Context) string {
	return lookup(ctx, cspNonceContextKey)
}
