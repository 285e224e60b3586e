package e2etest

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/myrjola/spoonmap/internal/errors"
)

// plainHTTPJar keeps the session and CSRF cookies of a server that marks them Secure while the tests talk to it
// over plain HTTP.
type plainHTTPJar struct {
	*cookiejar.Jar
}

func newPlainHTTPJar() (*plainHTTPJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &plainHTTPJar{Jar: jar}, nil
}

// SetCookies stores copies of cookies with the Secure attribute cleared.
func (j *plainHTTPJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	relaxed := make([]*http.Cookie, len(cookies))
	for i, cookie := range cookies {
		c := *cookie
		c.Secure = false
		relaxed[i] = &c
	}
	j.Jar.SetCookies(u, relaxed)
}
