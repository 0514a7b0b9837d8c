package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-portal/api"
	"github.com/jrsteele09/go-admin-portal/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Generic fallback messages used when the backend supplies no structured
// message for a failure.
const (
	loginFailedMsg          = "unable to sign in, please try again"
	registerFailedMsg       = "unable to create your account, please try again"
	profileUpdateFailedMsg  = "unable to update your profile, please try again"
	passwordUpdateFailedMsg = "unable to update your password, please try again"
	deleteAccountFailedMsg  = "unable to delete your account, please try again"
)

// Backend is the subset of the portal API the store depends on. *api.Client
// satisfies it; tests may substitute a fake.
type Backend interface {
	Me(ctx context.Context) (*users.User, error)
	Login(ctx context.Context, email, password string) (*users.User, error)
	Register(ctx context.Context, req users.RegisterRequest) (*users.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error)
	UpdatePassword(ctx context.Context, current, password, passwordConfirm string) error
	DeleteMe(ctx context.Context) error
}

var _ Backend = (*api.Client)(nil)

// Store is the single source of truth for "who is logged in" and the only
// component permitted to call the mutating identity endpoints. It is
// explicitly constructed and dependency-injected so tests can run isolated
// instances; Close releases subscribers at shutdown.
//
// Concurrent mutating operations are not serialized against each other: the
// last call to resolve wins, matching the single-threaded UI model this
// store fronts. The startup probe is the exception, collapsed to a single
// in-flight request.
type Store struct {
	backend Backend
	log     zerolog.Logger

	probe singleflight.Group

	mu      sync.RWMutex
	status  Status
	user    *users.User
	subs    map[int]func(Snapshot)
	nextSub int
	closed  bool
}

// Option modifies a Store during construction.
type Option func(*Store)

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store in the StatusUnknown state.
func New(backend Backend, options ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("[session.New] backend is required")
	}

	store := &Store{
		backend: backend,
		log:     zerolog.Nop(),
		status:  StatusUnknown,
		subs:    make(map[int]func(Snapshot)),
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Status: s.status, User: s.user}
}

// Subscribe registers a callback invoked after every state transition. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close detaches all subscribers. Subsequent transitions still mutate state
// but notify nobody.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[int]func(Snapshot))
}

// CheckSession issues the startup probe. The store moves to StatusChecking
// synchronously before the request goes out, so readers mid-flight observe
// StatusChecking rather than a stale StatusUnknown. Any probe failure
// resolves to StatusAnonymous; CheckSession itself never fails. Concurrent
// calls collapse to a single in-flight probe; the shared request is
// detached from any one caller's cancellation so it always runs to
// completion before the state settles.
func (s *Store) CheckSession(ctx context.Context) Snapshot {
	s.transition(StatusChecking, nil)

	probeCtx := context.WithoutCancel(ctx)
	snap, _, _ := s.probe.Do("probe", func() (any, error) {
		user, err := s.backend.Me(probeCtx)
		if err != nil {
			s.log.Debug().Str("reason", api.Message(err, "probe failed")).Msg("session probe resolved anonymous")
			return s.transition(StatusAnonymous, nil), nil
		}
		s.log.Debug().Str("user_id", user.ID).Msg("session probe resolved authenticated")
		return s.transition(StatusAuthenticated, user), nil
	})
	return snap.(Snapshot)
}

// Login exchanges credentials for a session. A failed attempt leaves the
// existing state untouched, including a previously valid session.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.log.Warn().Str("email", email).Err(err).Msg("login failed")
		return Result{Success: false, Message: api.Message(err, loginFailedMsg)}
	}
	s.transition(StatusAuthenticated, user)
	return Result{Success: true}
}

// Register creates and authenticates a new identity in a single call. Same
// contract as Login.
func (s *Store) Register(ctx context.Context, req users.RegisterRequest) Result {
	user, err := s.backend.Register(ctx, req)
	if err != nil {
		s.log.Warn().Str("email", req.Email).Err(err).Msg("registration failed")
		return Result{Success: false, Message: api.Message(err, registerFailedMsg)}
	}
	s.transition(StatusAuthenticated, user)
	return Result{Success: true}
}

// Logout invalidates the backend session and unconditionally clears local
// state. The local clear happens even when the backend call fails, so a dead
// network can never leave the UI stuck logged in.
func (s *Store) Logout(ctx context.Context) Result {
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout call failed, clearing local session anyway")
	}
	s.transition(StatusAnonymous, nil)
	return Result{Success: true}
}

// UpdateProfile mutates profile fields. On success the stored user is
// REPLACED with the backend's authoritative record rather than merged, so
// the client can never drift from the server's view. On failure the stored
// user is untouched.
func (s *Store) UpdateProfile(ctx context.Context, update users.ProfileUpdate) Result {
	user, err := s.backend.UpdateProfile(ctx, update)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile update failed")
		return Result{Success: false, Message: api.Message(err, profileUpdateFailedMsg)}
	}
	s.transition(StatusAuthenticated, user)
	return Result{Success: true}
}

// UpdatePassword is a pass-through credential operation; it never changes
// session state.
func (s *Store) UpdatePassword(ctx context.Context, current, password, passwordConfirm string) Result {
	if err := s.backend.UpdatePassword(ctx, current, password, passwordConfirm); err != nil {
		s.log.Warn().Err(err).Msg("password update failed")
		return Result{Success: false, Message: api.Message(err, passwordUpdateFailedMsg)}
	}
	return Result{Success: true}
}

// DeleteAccount destroys the account. Success clears local state exactly
// like Logout, since no session can outlive the account. Failure leaves
// state untouched and surfaces the error.
func (s *Store) DeleteAccount(ctx context.Context) Result {
	if err := s.backend.DeleteMe(ctx); err != nil {
		s.log.Warn().Err(err).Msg("account deletion failed")
		return Result{Success: false, Message: api.Message(err, deleteAccountFailedMsg)}
	}
	s.transition(StatusAnonymous, nil)
	return Result{Success: true}
}

// transition applies a state change and notifies subscribers. The user
// pointer is stored only for StatusAuthenticated, preserving the invariant
// that user is nil whenever the status is anything else.
func (s *Store) transition(status Status, user *users.User) Snapshot {
	if status != StatusAuthenticated {
		user = nil
	}

	s.mu.Lock()
	s.status = status
	s.user = user
	snap := Snapshot{Status: status, User: user}
	listeners := make([]func(Snapshot), 0, len(s.subs))
	if !s.closed {
		for _, fn := range s.subs {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return snap
}
