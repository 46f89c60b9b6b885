package routing

const DefaultBaseURL = "http://127.0.0.1:8000/"

// RequestEndpointURL is a path relative to the client's base URL.
type RequestEndpointURL string

const (
	HobbyCurrentUserURL    RequestEndpointURL = "currentuser/"
	HobbyAllHobbiesURL     RequestEndpointURL = "all-hobbies/"
	HobbyAddSingleHobbyURL RequestEndpointURL = "add_single_hobby/"
	HobbyUpdateProfileURL  RequestEndpointURL = "updateprofile/"
	HobbyChangePasswordURL RequestEndpointURL = "changepassword/"
	HobbyCSRFTokenURL      RequestEndpointURL = "get-csrf-token"
	HobbyLogoutURL         RequestEndpointURL = "logout/"
)
