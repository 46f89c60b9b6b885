package payload

import "encoding/json"

type AddHobbyPayload struct {
	HobbyID int `json:"hobby_id"`
}

func (p AddHobbyPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

type UpdateProfilePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	// nil is sent as null, which clears the date server-side.
	DateOfBirth *string `json:"date_of_birth"`
}

func (p UpdateProfilePayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (p ChangePasswordPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}
