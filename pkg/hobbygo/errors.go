package hobbygo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/response"
)

// ErrorResponse is returned for any non-2xx status.
type ErrorResponse struct {
	Endpoint   routing.RequestEndpointURL
	StatusCode int
	// Message is the server-provided error text, or the status text when the
	// body had none.
	Message string
	// ServerProvided is false when Message was synthesized from the status.
	ServerProvided bool
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

func newErrorResponse(endpoint routing.RequestEndpointURL, statusCode int, body []byte) *ErrorResponse {
	errResp := &ErrorResponse{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var errBody response.ErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil {
		if errBody.Error != "" {
			errResp.Message = errBody.Error
			errResp.ServerProvided = true
		} else if errBody.Message != "" {
			errResp.Message = errBody.Message
			errResp.ServerProvided = true
		}
	}

	return errResp
}

// AsErrorResponse unwraps err into an *ErrorResponse if it is one.
func AsErrorResponse(err error) (*ErrorResponse, bool) {
	var errResp *ErrorResponse
	if errors.As(err, &errResp) {
		return errResp, true
	}
	return nil, false
}

func newErrorResponseTypeAssertFailed(t string) error {
	return fmt.Errorf("failed to type assert response data to %s", t)
}
