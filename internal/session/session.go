// ABOUTME: Client-side session store with token lifecycle management
// ABOUTME: Persists tokens and user profile across CLI invocations

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
)

// API is the backend surface the store depends on
type API interface {
	Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	Me(ctx context.Context, accessToken string) (*client.User, error)
}

// State is an immutable snapshot of the session
type State struct {
	Access        string
	Refresh       string
	User          *client.User
	Bootstrapping bool
}

// Authenticated reports whether a user identity is present
func (s State) Authenticated() bool {
	return s.User != nil
}

// Store holds the process-wide authentication state. Tokens and the user
// profile are written to disk on every committed mutation so a later
// invocation can restore them; the bootstrapping flag is in-memory only
// and always starts true.
type Store struct {
	api  API
	file *File

	mu            sync.Mutex
	access        string
	refresh       string
	user          *client.User
	bootstrapping bool

	subscribers []func()
}

// New creates a store backed by the given API and persistence file,
// restoring any previously saved tokens and user
func New(api API, file *File) *Store {
	s := &Store{
		api:           api,
		file:          file,
		bootstrapping: true,
	}
	if file != nil {
		rec, err := file.Load()
		if err != nil {
			slog.Debug("session restore failed, starting empty", "error", err)
		} else {
			s.access = rec.Access
			s.refresh = rec.Refresh
			s.user = rec.User
		}
	}
	return s
}

// Snapshot returns the current session state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Access:        s.access,
		Refresh:       s.refresh,
		User:          s.user,
		Bootstrapping: s.bootstrapping,
	}
}

// Subscribe registers a callback invoked after every committed mutation.
// Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Bootstrap restores the session from persisted tokens. With no access
// token it only clears the bootstrapping flag. With a token it validates
// the session by fetching the identity; any failure is interpreted as
// "no longer logged in" and clears tokens and user together. Errors are
// never surfaced. Safe to call again; it re-checks the current token.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	token := s.access
	s.mu.Unlock()

	if token == "" {
		s.commit(func() {
			s.bootstrapping = false
		})
		return
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		slog.Debug("bootstrap identity check failed, clearing session", "error", err)
		s.commit(func() {
			s.access = ""
			s.refresh = ""
			s.user = nil
			s.bootstrapping = false
		})
		return
	}

	s.commit(func() {
		s.user = user
		s.bootstrapping = false
	})
}

// Login exchanges credentials for a session. On success the previous
// session is replaced wholesale; on failure the store is untouched and
// the error is returned as-is.
func (s *Store) Login(ctx context.Context, req client.LoginRequest) error {
	auth, err := s.api.Login(ctx, req)
	if err != nil {
		return err
	}
	s.applyAuth(auth)
	return nil
}

// Register creates an account and starts a session, with the same
// replace-wholesale-or-untouched contract as Login
func (s *Store) Register(ctx context.Context, req client.RegisterRequest) error {
	auth, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}
	s.applyAuth(auth)
	return nil
}

// Logout clears tokens and user. It does not call the backend.
func (s *Store) Logout() {
	s.commit(func() {
		s.access = ""
		s.refresh = ""
		s.user = nil
	})
}

// SetUser replaces only the user profile, leaving tokens alone.
// Used after a profile update commits.
func (s *Store) SetUser(user *client.User) {
	s.commit(func() {
		s.user = user
	})
}

func (s *Store) applyAuth(auth *client.AuthResponse) {
	user := auth.User
	s.commit(func() {
		s.access = auth.Access
		s.refresh = auth.Refresh
		s.user = &user
	})
}

// commit applies a mutation, persists the durable fields, and notifies
// subscribers. Persistence happens before the lock is released so no
// reader can observe state newer than what is on disk.
func (s *Store) commit(mutate func()) {
	s.mu.Lock()
	mutate()
	if s.file != nil {
		if err := s.file.Save(Record{
			Access:  s.access,
			Refresh: s.refresh,
			User:    s.user,
		}); err != nil {
			slog.Debug("session persist failed", "error", err)
		}
	}
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
