package routing

import (
	"net/http"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/response"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

type PayloadDataInterface interface {
	Encode() ([]byte, error)
}

type ResponseDataInterface interface {
	Decode(data []byte) (any, error)
}

type RequestEndpointInfo struct {
	Method             string
	HeaderOpts         types.HeaderOpts
	ContentType        types.ContentType
	ResponseDefinition ResponseDataInterface
}

// Reads skip the anti-forgery header; every POST carries it.
var RequestStoreDefinition = map[RequestEndpointURL]RequestEndpointInfo{
	HobbyCurrentUserURL: {
		Method:      http.MethodGet,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithRequestID: true,
		},
		ResponseDefinition: response.CurrentUserResponse{},
	},
	HobbyAllHobbiesURL: {
		Method:      http.MethodGet,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithRequestID: true,
		},
		ResponseDefinition: response.AllHobbiesResponse{},
	},
	HobbyAddSingleHobbyURL: {
		Method:      http.MethodPost,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithCsrfToken: true,
			WithRequestID: true,
		},
		ResponseDefinition: response.MessageResponse{},
	},
	HobbyUpdateProfileURL: {
		Method:      http.MethodPost,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithCsrfToken: true,
			WithRequestID: true,
		},
		ResponseDefinition: response.MessageResponse{},
	},
	HobbyChangePasswordURL: {
		Method:      http.MethodPost,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithCsrfToken: true,
			WithRequestID: true,
		},
		ResponseDefinition: response.MessageResponse{},
	},
	HobbyCSRFTokenURL: {
		Method:      http.MethodGet,
		ContentType: types.JSON,
		HeaderOpts: types.HeaderOpts{
			WithCookies:   true,
			WithRequestID: true,
		},
		ResponseDefinition: response.CSRFTokenResponse{},
	},
	HobbyLogoutURL: {
		Method:      http.MethodGet,
		ContentType: types.NONE,
		HeaderOpts: types.HeaderOpts{
			WithCookies: true,
			Extra: map[string]string{
				"accept": string(types.HTML),
			},
		},
	},
}
