package cookies_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
)

func TestNewCookiesFromString(t *testing.T) {
	t.Parallel()

	c := cookies.NewCookiesFromString("sessionid=abc; csrftoken=def;  ; theme=dark")
	require.Equal(t, "abc", c.Get(cookies.HobbySessionID))
	require.Equal(t, "def", c.Get(cookies.HobbyCSRFToken))
	require.Equal(t, "dark", c.Get("theme"))
	require.True(t, c.IsCookieEmpty("missing"))
}

func TestStringIsSorted(t *testing.T) {
	t.Parallel()

	c := cookies.NewCookies()
	c.Set(cookies.HobbySessionID, "s")
	c.Set(cookies.HobbyCSRFToken, "c")
	c.Set("a", "1")
	require.Equal(t, "a=1; csrftoken=c; sessionid=s", c.String())
}

func TestUpdateFromResponse(t *testing.T) {
	t.Parallel()

	c := cookies.NewCookiesFromString("sessionid=old; csrftoken=old; theme=dark")

	header := http.Header{}
	header.Add("Set-Cookie", (&http.Cookie{Name: "csrftoken", Value: "new", Path: "/"}).String())
	header.Add("Set-Cookie", (&http.Cookie{Name: "sessionid", Value: "", MaxAge: -1}).String())
	header.Add("Set-Cookie", (&http.Cookie{Name: "theme", Value: "light", Expires: time.Now().Add(-time.Hour)}).String())
	c.UpdateFromResponse(&http.Response{Header: header})

	require.Equal(t, "new", c.Get(cookies.HobbyCSRFToken))
	require.True(t, c.IsCookieEmpty(cookies.HobbySessionID))
	require.True(t, c.IsCookieEmpty("theme"))
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := cookies.NewCookiesFromString("sessionid=abc; csrftoken=def")
	c.Clear()
	require.Empty(t, c.String())
}
