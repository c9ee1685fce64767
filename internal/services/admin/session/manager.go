package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	apperrors "github.com/goalinstitute/admin-console/internal/platform/errors"
)

// State is the Manager's position in the session lifecycle.
type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State State
	User  *Profile
	// Loading is true until Init settles.
	Loading bool
}

// LoginResponse is the login RPC payload.
type LoginResponse struct {
	Success bool
	Token   string
	User    *Profile
	Message string
}

// Authenticator performs the login RPC. A returned error is a transport
// failure; credential failures come back as Success=false.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
}

// TokenVerifier checks a stored token.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

// LoginResult is what the login form sees.
type LoginResult struct {
	Success bool
	Error   string
}

const (
	defaultLoginError = "Login failed"
	networkError      = "Network error"
)

// Manager is the single writer of session state for one activation.
type Manager struct {
	store    *Store
	verifier TokenVerifier
	auth     Authenticator

	initOnce sync.Once

	mu        sync.Mutex
	state     State
	user      *Profile
	token     string
	listeners map[int]func(Snapshot)
	nextID    int
	closed    bool
}

// NewManager builds a Manager in the Initializing state.
func NewManager(store *Store, verifier TokenVerifier, auth Authenticator) *Manager {
	return &Manager{
		store:     store,
		verifier:  verifier,
		auth:      auth,
		state:     StateInitializing,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Init restores the persisted session. Only the first call has any effect;
// loading settles exactly once whichever branch is taken.
func (m *Manager) Init(ctx context.Context) Snapshot {
	m.initOnce.Do(func() {
		persisted, ok := m.restore(ctx)
		if ok {
			m.transition(StateAuthenticated, &persisted.Profile, persisted.Token)
			return
		}
		m.transition(StateAnonymous, nil, "")
	})
	return m.Snapshot()
}

func (m *Manager) restore(ctx context.Context) (Persisted, bool) {
	persisted, ok, err := m.store.Load(ctx)
	if err != nil {
		log.Printf("admin session: load: %v", err)
		m.clear(ctx)
		return Persisted{}, false
	}
	if !ok {
		return Persisted{}, false
	}
	if m.verifier == nil {
		m.clear(ctx)
		return Persisted{}, false
	}
	if _, err := m.verifier.Verify(persisted.Token); err != nil {
		// Expected when a token ages out; only the code is logged.
		log.Printf("admin session: discarding stored session: %s", apperrors.CodeOf(err))
		m.clear(ctx)
		return Persisted{}, false
	}
	return persisted, true
}

// Login sends credentials to the login RPC. Concurrent calls are not
// coordinated; the last successful save wins.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	m.Init(ctx)
	if m.auth == nil {
		return LoginResult{Error: networkError}
	}
	resp, err := m.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		log.Printf("admin session: login rpc: %v", err)
		return LoginResult{Error: networkError}
	}
	if !resp.Success {
		message := strings.TrimSpace(resp.Message)
		if message == "" {
			message = defaultLoginError
		}
		return LoginResult{Error: message}
	}
	if strings.TrimSpace(resp.Token) == "" || resp.User == nil || !resp.User.valid() {
		return LoginResult{Error: networkError}
	}
	profile := *resp.User
	if err := m.store.Save(ctx, resp.Token, profile); err != nil {
		log.Printf("admin session: save: %v", err)
		return LoginResult{Error: defaultLoginError}
	}
	m.transition(StateAuthenticated, &profile, strings.TrimSpace(resp.Token))
	return LoginResult{Success: true}
}

// Logout clears the persisted session and goes Anonymous. There is no
// server-side revocation.
func (m *Manager) Logout(ctx context.Context) error {
	m.Init(ctx)
	err := m.store.Clear(ctx)
	m.transition(StateAnonymous, nil, "")
	return err
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// User returns the cached profile when authenticated.
func (m *Manager) User() (Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return Profile{}, false
	}
	return *m.user, true
}

// Loading reports whether Init has not settled yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateInitializing
}

// Token returns the bearer token of the current session, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn for state changes and returns its unsubscribe func.
// After Close it is a no-op.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Close detaches every listener. Later transitions are not broadcast.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	clear(m.listeners)
}

func (m *Manager) transition(state State, user *Profile, token string) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.token = token
	snap := m.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: m.state, Loading: m.state == StateInitializing}
	if m.user != nil {
		user := *m.user
		snap.User = &user
	}
	return snap
}

func (m *Manager) clear(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("admin session: clear: %v", err)
	}
}
