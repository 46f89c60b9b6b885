package types

import "slices"

type Hobby struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Friend struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	// ISO calendar date (YYYY-MM-DD), nil when the user never set one.
	DateOfBirth *string  `json:"date_of_birth"`
	Hobbies     []Hobby  `json:"hobbies"`
	Friends     []Friend `json:"friends,omitempty"`
}

// Clone returns a deep copy, so callers can't reach into store-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		clone.DateOfBirth = &dob
	}
	clone.Hobbies = slices.Clone(u.Hobbies)
	clone.Friends = slices.Clone(u.Friends)
	return &clone
}

func (u *User) HobbyIDs() map[int]struct{} {
	ids := make(map[int]struct{})
	if u == nil {
		return ids
	}
	for _, hobby := range u.Hobbies {
		ids[hobby.ID] = struct{}{}
	}
	return ids
}
