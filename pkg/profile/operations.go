package profile

import (
	"context"
	"errors"
	"slices"

	"github.com/hobbyhub/hobbies/pkg/hobbygo"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/payload"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
	"github.com/hobbyhub/hobbies/pkg/profile/event"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrSaveInProgress   = errors.New("a profile save is already in progress")
)

const (
	MessageFetchUserFailed       = "Failed to fetch user data"
	MessageFetchHobbiesFailed    = "Failed to fetch hobbies"
	MessageAddHobbyFailed        = "Failed to add hobby"
	MessageUpdateProfileFailed   = "Failed to update profile"
	MessagePasswordMismatch      = "Passwords do not match"
	MessagePasswordChanged       = "Password changed successfully"
	MessageChangePasswordFailed  = "Failed to change password"
	MessageChangePasswordErrored = "Error changing password"
	MessageCSRFTokenFailed       = "Failed to fetch CSRF token"
	MessageLogoutFailed          = "Failed to log out"
)

// FetchUserData replaces the user with the server's copy. Overlapping calls
// are not de-duplicated; whichever response lands last wins.
func (s *Store) FetchUserData(ctx context.Context) (*types.User, error) {
	user, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		s.fail(err, MessageFetchUserFailed)
		return nil, err
	}

	s.mutate(func() []any {
		s.user = user.Clone()
		s.errorMessage = ""
		return []any{
			event.UserUpdated{User: user.Clone()},
			s.recomputeAvailableLocked(),
			s.statusLocked(),
		}
	})
	return user.Clone(), nil
}

// FetchAllHobbies loads the catalog and returns the hobbies the user does not
// have yet. Without a loaded user every catalog entry is available.
func (s *Store) FetchAllHobbies(ctx context.Context) ([]types.Hobby, error) {
	catalog, err := s.api.GetAllHobbies(ctx)
	if err != nil {
		s.fail(err, MessageFetchHobbiesFailed)
		return nil, err
	}

	var available event.AvailableHobbiesUpdated
	s.mutate(func() []any {
		s.catalog = slices.Clone(catalog)
		s.errorMessage = ""
		available = s.recomputeAvailableLocked()
		return []any{available, s.statusLocked()}
	})
	return available.Hobbies, nil
}

// AddHobbyToUser attaches a hobby server-side and then reloads the user. The
// hobby is never appended locally.
func (s *Store) AddHobbyToUser(ctx context.Context, hobbyID int) error {
	err := s.api.AddHobby(ctx, hobbyID)
	if err != nil {
		message := MessageAddHobbyFailed
		if errResp, ok := hobbygo.AsErrorResponse(err); ok && errResp.ServerProvided {
			message += ": " + errResp.Message
		}
		s.fail(err, message)
		return err
	}

	_, err = s.FetchUserData(ctx)
	return err
}

// SaveChangesToUser saves the editable profile fields and patches them onto
// the local user without a reload. Only one save runs at a time; a call made
// while another is in flight returns ErrSaveInProgress without a request.
// An empty dateOfBirth clears the date.
func (s *Store) SaveChangesToUser(ctx context.Context, firstName, lastName, email, dateOfBirth string) error {
	s.lock.Lock()
	if s.isSaving {
		s.lock.Unlock()
		s.log.Debug().Msg("Ignoring profile save while another one is in flight")
		return ErrSaveInProgress
	}
	s.isSaving = true
	status := s.statusLocked()
	handler := s.eventHandler
	s.lock.Unlock()
	if handler != nil {
		handler(status)
	}

	defer s.mutate(func() []any {
		s.isSaving = false
		return []any{s.statusLocked()}
	})

	var dob *string
	if dateOfBirth != "" {
		dob = &dateOfBirth
	}
	err := s.api.UpdateProfile(ctx, payload.UpdateProfilePayload{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dob,
	})
	if err != nil {
		s.fail(err, MessageUpdateProfileFailed)
		return err
	}

	s.mutate(func() []any {
		s.editMode = false
		s.errorMessage = ""
		if s.user == nil {
			s.log.Warn().Msg("Profile saved but no user is loaded, nothing to patch")
			return []any{s.statusLocked()}
		}
		s.user.FirstName = firstName
		s.user.LastName = lastName
		s.user.Email = email
		if dob != nil {
			value := *dob
			s.user.DateOfBirth = &value
		} else {
			s.user.DateOfBirth = nil
		}
		return []any{event.UserUpdated{User: s.user.Clone()}, s.statusLocked()}
	})
	return nil
}

// ChangePassword checks the confirmation locally before asking the server to
// change the password. The user itself is never touched.
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmNewPassword string) error {
	if newPassword != confirmNewPassword {
		s.fail(ErrPasswordMismatch, MessagePasswordMismatch)
		return ErrPasswordMismatch
	}

	err := s.api.ChangePassword(ctx, payload.ChangePasswordPayload{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		if _, ok := hobbygo.AsErrorResponse(err); ok {
			s.fail(err, MessageChangePasswordFailed)
		} else {
			s.fail(err, MessageChangePasswordErrored)
		}
		return err
	}

	s.mutate(func() []any {
		s.errorMessage = ""
		s.successMessage = MessagePasswordChanged
		s.passwordEditMode = false
		return []any{s.statusLocked()}
	})
	return nil
}

// GetCSRFToken returns the current anti-forgery token, or "" if none is set.
func (s *Store) GetCSRFToken() string {
	return s.api.CSRFToken()
}

// RefreshCSRFToken asks the server for a token when the cookie is missing or
// stale.
func (s *Store) RefreshCSRFToken(ctx context.Context) (string, error) {
	token, err := s.api.FetchCSRFToken(ctx)
	if err != nil {
		s.fail(err, MessageCSRFTokenFailed)
		return "", err
	}
	return token, nil
}

// Refresh loads the user and then the catalog, in that order so the catalog
// is filtered against a fresh user.
func (s *Store) Refresh(ctx context.Context) error {
	if _, err := s.FetchUserData(ctx); err != nil {
		return err
	}
	_, err := s.FetchAllHobbies(ctx)
	return err
}

// Logout ends the server session. Local state is cleared either way.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx, s.cfg.LogoutNext)
	s.ClearUser()
	if err != nil {
		s.fail(err, MessageLogoutFailed)
		return err
	}
	return nil
}
