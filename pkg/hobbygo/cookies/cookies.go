package cookies

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

type HobbyCookieName string

const (
	HobbyCSRFToken HobbyCookieName = "csrftoken"
	HobbySessionID HobbyCookieName = "sessionid"
)

type Cookies struct {
	Store map[HobbyCookieName]string
	lock  sync.RWMutex
}

func NewCookies() *Cookies {
	return &Cookies{
		Store: make(map[HobbyCookieName]string),
	}
}

func NewCookiesFromString(cookieStr string) *Cookies {
	c := NewCookies()
	cookieStrings := strings.Split(cookieStr, ";")
	fakeHeader := http.Header{}
	for _, cookieStr := range cookieStrings {
		trimmedCookieStr := strings.TrimSpace(cookieStr)
		if trimmedCookieStr != "" {
			fakeHeader.Add("Set-Cookie", trimmedCookieStr)
		}
	}
	fakeResponse := &http.Response{Header: fakeHeader}

	for _, cookie := range fakeResponse.Cookies() {
		c.Store[HobbyCookieName(cookie.Name)] = cookie.Value
	}

	return c
}

// String renders the store as a Cookie header value. Names are sorted so the
// output is stable between calls.
func (c *Cookies) String() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	out := make([]string, 0, len(c.Store))
	for k, v := range c.Store {
		out = append(out, string(k)+"="+v)
	}
	sort.Strings(out)
	return strings.Join(out, "; ")
}

func (c *Cookies) IsCookieEmpty(key HobbyCookieName) bool {
	return c.Get(key) == ""
}

func (c *Cookies) Get(key HobbyCookieName) string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.Store[key]
}

func (c *Cookies) Set(key HobbyCookieName, value string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Store[key] = value
}

func (c *Cookies) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Store = make(map[HobbyCookieName]string)
}

func (c *Cookies) UpdateFromResponse(r *http.Response) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, cookie := range r.Cookies() {
		expired := !cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())
		if cookie.MaxAge < 0 || expired || cookie.Value == "" {
			delete(c.Store, HobbyCookieName(cookie.Name))
		} else {
			c.Store[HobbyCookieName(cookie.Name)] = cookie.Value
		}
	}
}
