package response

import (
	"encoding/json"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

type CurrentUserResponse struct {
	types.User
}

func (r CurrentUserResponse) Decode(data []byte) (any, error) {
	respData := &CurrentUserResponse{}
	return respData, json.Unmarshal(data, &respData)
}

type AllHobbiesResponse []types.Hobby

func (r AllHobbiesResponse) Decode(data []byte) (any, error) {
	respData := &AllHobbiesResponse{}
	return respData, json.Unmarshal(data, &respData)
}

// MessageResponse is the body of a successful write. The server only sends a
// human readable confirmation, so a body that isn't JSON is not an error.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

func (r MessageResponse) Decode(data []byte) (any, error) {
	respData := &MessageResponse{}
	_ = json.Unmarshal(data, respData)
	return respData, nil
}

type CSRFTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

func (r CSRFTokenResponse) Decode(data []byte) (any, error) {
	respData := &CSRFTokenResponse{}
	return respData, json.Unmarshal(data, &respData)
}

// ErrorBody is what the API sends with non-2xx statuses. Older views use
// "message" instead of "error".
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
