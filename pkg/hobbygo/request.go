package hobbygo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

// MakeRequest sends a single request and returns the raw response and body.
// Set-Cookie headers are applied to the cookie store before returning, so a
// rotated token is visible to the next call. Non-2xx statuses are not
// treated as errors here.
func (c *Client) MakeRequest(ctx context.Context, url string, method string, headers http.Header, payload []byte, contentType types.ContentType) (*http.Response, []byte, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if headers != nil {
		req.Header = headers
	}
	if contentType != types.NONE {
		req.Header.Set("content-type", string(contentType))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.cookies.UpdateFromResponse(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.Logger.Trace().
		Str("method", method).
		Str("url", url).
		Str("request_id", req.Header.Get("x-request-id")).
		Int("status_code", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	return resp, respBody, nil
}

// MakeRoutingRequest sends a request described by routing.RequestStoreDefinition.
// On a 2xx status the body is decoded with the endpoint's response
// definition; any other status yields an *ErrorResponse.
func (c *Client) MakeRoutingRequest(ctx context.Context, endpointURL routing.RequestEndpointURL, payload routing.PayloadDataInterface, query routing.PayloadDataInterface) (*http.Response, any, error) {
	definition, ok := routing.RequestStoreDefinition[endpointURL]
	if !ok {
		return nil, nil, fmt.Errorf("no request definition for endpoint %s", endpointURL)
	}

	url := c.baseURL + string(endpointURL)
	if query != nil {
		encodedQuery, err := query.Encode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode query for %s: %w", endpointURL, err)
		}
		if len(encodedQuery) > 0 {
			url = url + "?" + string(encodedQuery)
		}
	}

	var payloadBytes []byte
	if payload != nil {
		var err error
		payloadBytes, err = payload.Encode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode payload for %s: %w", endpointURL, err)
		}
	}

	headers := c.buildHeaders(definition.HeaderOpts)
	resp, respBody, err := c.MakeRequest(ctx, url, definition.Method, headers, payloadBytes, definition.ContentType)
	if err != nil {
		return resp, nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil, newErrorResponse(endpointURL, resp.StatusCode, respBody)
	}

	if definition.ResponseDefinition == nil {
		return resp, respBody, nil
	}

	respData, err := definition.ResponseDefinition.Decode(respBody)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to decode response from %s: %w", endpointURL, err)
	}

	return resp, respData, nil
}
