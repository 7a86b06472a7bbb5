package authclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// State is the session lifecycle state. Guards must not route until the
// session has left Bootstrapping.
type State int

const (
	// Bootstrapping means a persisted token may exist but has not been
	// verified yet.
	Bootstrapping State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "bootstrapping"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session holds the client's authentication state: the current user, the
// bearer token, and where the session is in its lifecycle. All methods are
// safe for concurrent use.
type Session struct {
	client *Client
	store  TokenStore
	log    zerolog.Logger

	mu    sync.Mutex
	state State
	user  *User
	token string
	// generation invalidates in-flight bootstraps: a login or logout that
	// lands while a verify request is outstanding wins, and the late reply
	// is dropped.
	generation uint64
}

// NewSession creates a Session in the Bootstrapping state.
func NewSession(client *Client, store TokenStore, log zerolog.Logger) *Session {
	return &Session{
		client: client,
		store:  store,
		log:    log,
		state:  Bootstrapping,
	}
}

// Bootstrap restores the session from the persisted token. Without a token it
// settles Unauthenticated with no network call. With one, it asks the server
// to verify: a definitive 401 clears the persisted token, while a transport
// error keeps it so a later restart can retry.
func (s *Session) Bootstrap(ctx context.Context) State {
	s.mu.Lock()
	s.state = Bootstrapping
	s.user = nil
	gen := s.generation
	s.mu.Unlock()

	token, err := s.store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("token load failed")
		return s.settle(gen, Unauthenticated, nil, "")
	}
	if token == "" {
		return s.settle(gen, Unauthenticated, nil, "")
	}

	user, err := s.client.Verify(ctx, token)
	if err != nil {
		if IsUnauthorized(err) {
			if clearErr := s.store.Clear(); clearErr != nil {
				s.log.Warn().Err(clearErr).Msg("token clear failed")
			}
			return s.settle(gen, Unauthenticated, nil, "")
		}
		s.log.Warn().Err(err).Msg("verify unreachable, keeping persisted token")
		return s.settle(gen, Unauthenticated, nil, "")
	}

	return s.settle(gen, Authenticated, user, token)
}

// settle applies the bootstrap outcome unless the session moved on while the
// verify request was in flight.
func (s *Session) settle(gen uint64, state State, user *User, token string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.log.Debug().Msg("stale bootstrap result dropped")
		return s.state
	}
	s.state = state
	s.user = user
	s.token = token
	return state
}

// Login authenticates, persists the token, and moves to Authenticated.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	user, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("token persist failed, session is memory-only")
	}

	s.mu.Lock()
	s.generation++
	s.state = Authenticated
	s.user = user
	s.token = token
	s.mu.Unlock()

	return user, nil
}

// Signup registers an account and, like Login, establishes the session with
// the token issued by the server.
func (s *Session) Signup(ctx context.Context, name, email, password string, role Role) (*User, error) {
	user, token, err := s.client.Signup(ctx, name, email, password, role)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("token persist failed, session is memory-only")
	}

	s.mu.Lock()
	s.generation++
	s.state = Authenticated
	s.user = user
	s.token = token
	s.mu.Unlock()

	return user, nil
}

// Logout clears both the in-memory session and the persisted token.
func (s *Session) Logout() {
	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("token clear failed")
	}

	s.mu.Lock()
	s.generation++
	s.state = Unauthenticated
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the authenticated user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the active bearer token, or "".
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
