// Package profile holds the current user's profile state and keeps it in
// sync with the hobbies API.
//
// A Store is the only owner of the user, the hobby catalog and the UI flags
// derived from them. Collaborators read through the getters (which return
// copies) or subscribe to events, and change state only through the Store's
// operations. Operations report failure twice: as the returned error, and as
// ErrorMessage for display.
package profile

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hobbyhub/hobbies/pkg/hobbygo"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/payload"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
	"github.com/hobbyhub/hobbies/pkg/profile/event"
)

// API is the part of the hobbies client the store talks to.
type API interface {
	GetCurrentUser(ctx context.Context) (*types.User, error)
	GetAllHobbies(ctx context.Context) ([]types.Hobby, error)
	AddHobby(ctx context.Context, hobbyID int) error
	UpdateProfile(ctx context.Context, p payload.UpdateProfilePayload) error
	ChangePassword(ctx context.Context, p payload.ChangePasswordPayload) error
	FetchCSRFToken(ctx context.Context) (string, error)
	Logout(ctx context.Context, next string) error
	CSRFToken() string
}

var _ API = (*hobbygo.Client)(nil)

// Container is the operation surface UI collaborators depend on.
type Container interface {
	FetchUserData(ctx context.Context) (*types.User, error)
	FetchAllHobbies(ctx context.Context) ([]types.Hobby, error)
	AddHobbyToUser(ctx context.Context, hobbyID int) error
	SaveChangesToUser(ctx context.Context, firstName, lastName, email, dateOfBirth string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword, confirmNewPassword string) error
	GetCSRFToken() string
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	SetEditMode(enabled bool)
	SetPasswordEditMode(enabled bool)
	State() State
}

var _ Container = (*Store)(nil)

type EventHandler func(evt any)

type StoreOpts struct {
	// Config provides the displayname template and logout target. Defaults
	// to the embedded example config.
	Config       *Config
	EventHandler EventHandler
}

// State is a point-in-time copy of everything the store exposes.
type State struct {
	User             *types.User
	AvailableHobbies []types.Hobby
	IsSaving         bool
	ErrorMessage     string
	SuccessMessage   string
	EditMode         bool
	PasswordEditMode bool
}

type Store struct {
	api          API
	cfg          *Config
	log          zerolog.Logger
	eventHandler EventHandler

	lock             sync.RWMutex
	user             *types.User
	catalog          []types.Hobby
	available        []types.Hobby
	isSaving         bool
	errorMessage     string
	successMessage   string
	editMode         bool
	passwordEditMode bool
}

func NewStore(api API, opts *StoreOpts, logger zerolog.Logger) *Store {
	if opts == nil {
		opts = &StoreOpts{}
	}
	s := &Store{
		api:          api,
		cfg:          opts.Config,
		eventHandler: opts.EventHandler,
		log:          logger.With().Str("component", "profile_store").Logger(),
		available:    []types.Hobby{},
	}
	if s.cfg == nil {
		s.cfg = DefaultConfig()
	}
	return s
}

func (s *Store) SetEventHandler(handler EventHandler) {
	s.lock.Lock()
	s.eventHandler = handler
	s.lock.Unlock()
}

func (s *Store) User() *types.User {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user.Clone()
}

func (s *Store) AvailableHobbies() []types.Hobby {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.available)
}

func (s *Store) IsSaving() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.isSaving
}

func (s *Store) ErrorMessage() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.errorMessage
}

func (s *Store) SuccessMessage() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.successMessage
}

func (s *Store) EditMode() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.editMode
}

func (s *Store) PasswordEditMode() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.passwordEditMode
}

func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return State{
		User:             s.user.Clone(),
		AvailableHobbies: slices.Clone(s.available),
		IsSaving:         s.isSaving,
		ErrorMessage:     s.errorMessage,
		SuccessMessage:   s.successMessage,
		EditMode:         s.editMode,
		PasswordEditMode: s.passwordEditMode,
	}
}

func (s *Store) SetEditMode(enabled bool) {
	s.mutate(func() []any {
		s.editMode = enabled
		return []any{s.statusLocked()}
	})
}

func (s *Store) SetPasswordEditMode(enabled bool) {
	s.mutate(func() []any {
		s.passwordEditMode = enabled
		return []any{s.statusLocked()}
	})
}

func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user != nil
}

// UserName returns the username, or "Guest" when nobody is loaded.
func (s *Store) UserName() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.user == nil || s.user.Username == "" {
		return "Guest"
	}
	return s.user.Username
}

func (s *Store) DisplayName() string {
	s.lock.RLock()
	user := s.user
	var firstName, lastName string
	if user != nil {
		firstName, lastName = user.FirstName, user.LastName
	}
	s.lock.RUnlock()

	if name := s.cfg.FormatDisplayname(firstName, lastName); name != "" {
		return name
	}
	return s.UserName()
}

// ClearUser forgets the current user. The catalog is kept, so the available
// view goes back to the full catalog.
func (s *Store) ClearUser() {
	s.mutate(func() []any {
		s.user = nil
		return []any{event.UserCleared{}, s.recomputeAvailableLocked()}
	})
}

// mutate runs fn under the write lock and dispatches the events it returns
// once the lock is released.
func (s *Store) mutate(fn func() []any) {
	s.lock.Lock()
	events := fn()
	handler := s.eventHandler
	s.lock.Unlock()

	if handler == nil {
		return
	}
	for _, evt := range events {
		if evt != nil {
			handler(evt)
		}
	}
}

func (s *Store) statusLocked() event.StatusChanged {
	return event.StatusChanged{
		IsSaving:         s.isSaving,
		ErrorMessage:     s.errorMessage,
		SuccessMessage:   s.successMessage,
		EditMode:         s.editMode,
		PasswordEditMode: s.passwordEditMode,
	}
}

// recomputeAvailableLocked rebuilds the available view from scratch. It must
// run after every change to either the user or the catalog.
func (s *Store) recomputeAvailableLocked() event.AvailableHobbiesUpdated {
	owned := s.user.HobbyIDs()
	available := make([]types.Hobby, 0, len(s.catalog))
	for _, hobby := range s.catalog {
		if _, ok := owned[hobby.ID]; !ok {
			available = append(available, hobby)
		}
	}
	s.available = available
	return event.AvailableHobbiesUpdated{Hobbies: slices.Clone(available)}
}

// fail logs err and makes message the authoritative diagnostic.
func (s *Store) fail(err error, message string) {
	s.log.Err(err).Msg(message)
	s.mutate(func() []any {
		s.errorMessage = message
		s.successMessage = ""
		return []any{s.statusLocked()}
	})
}
