package hobbygo

import (
	"context"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/query"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/response"
)

// FetchCSRFToken asks the server for a token and stores it as the csrftoken
// cookie. The server normally sets the cookie itself; storing the returned
// value covers servers that only put it in the body.
func (c *Client) FetchCSRFToken(ctx context.Context) (string, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.HobbyCSRFTokenURL, nil, nil)
	if err != nil {
		return "", err
	}

	tokenResponse, ok := respData.(*response.CSRFTokenResponse)
	if !ok || tokenResponse == nil {
		return "", newErrorResponseTypeAssertFailed("*response.CSRFTokenResponse")
	}

	if tokenResponse.CSRFToken != "" {
		c.cookies.Set(cookies.HobbyCSRFToken, tokenResponse.CSRFToken)
	}

	if c.cookies.IsCookieEmpty(cookies.HobbyCSRFToken) {
		c.Logger.Warn().Msg("CSRF token not found in cookies")
	}

	return c.CSRFToken(), nil
}

// Logout ends the server session and forgets all cookies, even when the
// request fails.
func (c *Client) Logout(ctx context.Context, next string) error {
	logoutQuery := &query.LogoutQuery{
		Next: next,
	}
	_, _, err := c.MakeRoutingRequest(ctx, routing.HobbyLogoutURL, nil, logoutQuery)
	c.cookies.Clear()
	return err
}
