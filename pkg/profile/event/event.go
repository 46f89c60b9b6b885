package event

import (
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

// UserUpdated fires after the user was replaced by a fetch or patched by a
// profile save. User is a copy.
type UserUpdated struct {
	User *types.User
}

// UserCleared fires when the user is dropped, e.g. on logout.
type UserCleared struct{}

// AvailableHobbiesUpdated fires whenever the derived catalog view is
// recomputed.
type AvailableHobbiesUpdated struct {
	Hobbies []types.Hobby
}

// StatusChanged carries the UI flags after any of them changed.
type StatusChanged struct {
	IsSaving         bool
	ErrorMessage     string
	SuccessMessage   string
	EditMode         bool
	PasswordEditMode bool
}
