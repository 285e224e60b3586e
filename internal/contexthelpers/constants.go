package contexthelpers

type contextKey string

const (
	signedInUserIDContextKey = contextKey("signedInUserID")
	currentPathContextKey    = contextKey("currentPath")
	csrfTokenContextKey      = contextKey("csrfToken")
	cspNonceContextKey       = contextKey("cspNonce")
)
