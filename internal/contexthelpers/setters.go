package contexthelpers

import (
	"context"
	"net/http"
)

func with(r *http.Request, key contextKey, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, value))
}

func SetSignedInUserID(r *http.Request, userID string) *http.Request {
	return with(r, signedInUserIDContextKey, userID)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return with(r, currentPathContextKey, currentPath)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	return with(r, csrfTokenContextKey, csrfToken)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	return with(r, cspNonceContextKey, nonce)
}
