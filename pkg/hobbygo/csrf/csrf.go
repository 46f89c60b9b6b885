// Package csrf reads the anti-forgery token the API hands out as a cookie.
package csrf

import (
	"strings"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
)

// HeaderName is the request header the API expects the token in.
const HeaderName = "X-CSRFToken"

// CookieSource yields the full cookie string, in Cookie header form.
type CookieSource interface {
	String() string
}

// Accessor re-reads the token from its source on every call, since the
// server may rotate the cookie between requests.
type Accessor struct {
	src CookieSource
}

func NewAccessor(src CookieSource) *Accessor {
	return &Accessor{src: src}
}

// GetToken returns the token or "" if the cookie is not set. A missing token
// is not an error; callers send the request without it.
func (a *Accessor) GetToken() string {
	if a == nil || a.src == nil {
		return ""
	}
	return FromCookieString(a.src.String())
}

func FromCookieString(cookieStr string) string {
	prefix := string(cookies.HobbyCSRFToken) + "="
	for _, entry := range strings.Split(cookieStr, ";") {
		entry = strings.TrimSpace(entry)
		if value, ok := strings.CutPrefix(entry, prefix); ok {
			return value
		}
	}
	return ""
}
