package hobbygo

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/csrf"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing"
)

type ClientOpts struct {
	// BaseURL is the API origin, e.g. http://127.0.0.1:8000/. Defaults to
	// routing.DefaultBaseURL.
	BaseURL string
	Cookies *cookies.Cookies
}

type Client struct {
	Logger     zerolog.Logger
	baseURL    string
	cookies    *cookies.Cookies
	csrf       *csrf.Accessor
	http       *http.Client
	httpProxy  func(*http.Request) (*url.URL, error)
	socksProxy proxy.Dialer
}

// NewClient creates a client for the API at opts.BaseURL. Requests are
// bounded by the caller's context and by transport timeouts, with an overall
// limit of 60 seconds per request.
func NewClient(opts *ClientOpts, logger zerolog.Logger) *Client {
	if opts == nil {
		opts = &ClientOpts{}
	}
	cli := Client{
		http: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 40 * time.Second,
				ForceAttemptHTTP2:     true,
			},
			Timeout: 60 * time.Second,
		},
		Logger:  logger,
		baseURL: opts.BaseURL,
	}

	if cli.baseURL == "" {
		cli.baseURL = routing.DefaultBaseURL
	}
	if !strings.HasSuffix(cli.baseURL, "/") {
		cli.baseURL += "/"
	}

	if opts.Cookies != nil {
		cli.cookies = opts.Cookies
	} else {
		cli.cookies = cookies.NewCookies()
	}
	cli.csrf = csrf.NewAccessor(cli.cookies)

	return &cli
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetCookieString() string {
	return c.cookies.String()
}

// CSRFToken reads the current anti-forgery token from the cookie store.
func (c *Client) CSRFToken() string {
	return c.csrf.GetToken()
}

func (c *Client) SetProxy(proxyAddr string) error {
	proxyParsed, err := url.Parse(proxyAddr)
	if err != nil {
		return err
	}

	if proxyParsed.Scheme == "http" || proxyParsed.Scheme == "https" {
		c.httpProxy = http.ProxyURL(proxyParsed)
		c.http.Transport.(*http.Transport).Proxy = c.httpProxy
	} else if proxyParsed.Scheme == "socks5" {
		c.socksProxy, err = proxy.FromURL(proxyParsed, &net.Dialer{Timeout: 20 * time.Second})
		if err != nil {
			return err
		}
		c.http.Transport.(*http.Transport).DialContext = func(ctx context.Context, network string, addr string) (net.Conn, error) {
			return c.socksProxy.Dial(network, addr)
		}
		contextDialer, ok := c.socksProxy.(proxy.ContextDialer)
		if ok {
			c.http.Transport.(*http.Transport).DialContext = contextDialer.DialContext
		}
	}

	c.Logger.Debug().
		Str("scheme", proxyParsed.Scheme).
		Str("host", proxyParsed.Host).
		Msg("Using proxy")
	return nil
}
