package e2etest

import (
	"github.com/OPSAF/Anime/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
)

// plainJar stores cookies for a test server that speaks plain HTTP. The Secure flag is dropped so that session and
// language cookies are sent back. The cookies as sent are kept by name for inspection.
type plainJar struct {
	jar *cookiejar.Jar

	mu     sync.Mutex
	latest map[string]*http.Cookie
}

func newPlainJar() (*plainJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &plainJar{jar: jar, latest: make(map[string]*http.Cookie)}, nil
}

func (j *plainJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	for _, cookie := range cookies {
		sent := *cookie
		j.latest[cookie.Name] = &sent
		cookie.Secure = false
	}
	j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
}

func (j *plainJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

func (j *plainJar) lookup(name string) (*http.Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.latest[name]
	return c, ok
}

// Cookie returns the cookie the server last set under name with the attributes it was sent with.
func (c *Client) Cookie(name string) (*http.Cookie, bool) {
	return c.jar.lookup(name)
}
