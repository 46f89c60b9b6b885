package hobbygo

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/csrf"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

const UserAgent = "hobbygo/1.0 (+https://github.com/hobbyhub/hobbies)"

var defaultConstantHeaders = http.Header{
	"Accept":          []string{string(types.JSON)},
	"Accept-Language": []string{"en-US,en;q=0.9"},
	"User-Agent":      []string{UserAgent},
}

func (c *Client) buildHeaders(opts types.HeaderOpts) http.Header {
	extra := make(map[string]string, len(opts.Extra)+4)
	for k, v := range opts.Extra {
		extra[k] = v
	}

	headers := defaultConstantHeaders.Clone()
	if opts.WithCookies {
		if cookieStr := c.cookies.String(); cookieStr != "" {
			extra["cookie"] = cookieStr
		}
	}

	// An empty token is still sent; the server decides what to do with it.
	if opts.WithCsrfToken {
		extra[csrf.HeaderName] = c.CSRFToken()
	}

	if opts.WithRequestID {
		extra["x-request-id"] = uuid.NewString()
	}

	if opts.Origin != "" {
		extra["origin"] = opts.Origin
	}

	if opts.Referer != "" {
		extra["referer"] = opts.Referer
	}

	for k, v := range extra {
		headers.Set(k, v)
	}

	return headers
}
