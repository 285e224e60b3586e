package main

import (
	"net/http"
	"time"
)

// timeoutBody has no scripts because the timeout response carries no CSP nonce.
const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout · Spoonmap</title><link rel="stylesheet" href="/static/styles.css"></head>
<body>
<main>
    <h1>The kitchen is running late</h1>
    <p>The page took too long to prepare. <a href="">Try again</a> or head back to <a href="/">all shows</a>.</p>
</main>
</body>
</html>
`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, serverTimeout time.Duration) http.Handler {
	// Respond a little before the server's write timeout closes the connection.
	return http.TimeoutHandler(h, serverTimeout-500*time.Millisecond, timeoutBody) //nolint:mnd // 500ms margin
}
