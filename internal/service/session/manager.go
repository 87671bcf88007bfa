package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	model "github.com/zhouzirui/wealth-desk/client/internal/model/session"
	"github.com/zhouzirui/wealth-desk/client/internal/store/token"
)

const (
	LoginPath    = "/api/v1/auth/login"
	IdentityPath = "/api/v1/auth/me"
)

// ErrTokenMissing is returned when the login endpoint answers 2xx without a token.
var ErrTokenMissing = errors.New("login response did not include an access token")

// API is the transport surface the Manager needs. The Manager is the only
// component allowed to call SetBearer and ClearBearer.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
	SetBearer(token string)
	ClearBearer()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// Manager owns the bearer credential and the identity it resolves to.
type Manager struct {
	api   API
	store token.Store

	// writeMu serializes Login, ResolveIdentity and Restore.
	writeMu sync.Mutex

	mu       sync.RWMutex
	state    model.State
	token    string
	identity model.Identity
	// gen changes whenever the credential is installed or cleared; an identity
	// lookup only applies its result if gen is unchanged when it returns.
	gen uint64
}

// NewManager creates a logged-out Manager. Call Restore to pick up a
// persisted credential.
func NewManager(api API, store token.Store) *Manager {
	return &Manager{api: api, store: store}
}

// Login exchanges username and password for a credential and resolves the
// identity. Rejections are returned unchanged and leave the session as it was.
// An identity lookup failure after a successful login is not an error: the
// session ends logged out.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	var resp loginResponse
	if err := m.api.Do(ctx, http.MethodPost, LoginPath, loginRequest{Username: username, Password: password}, &resp); err != nil {
		log.Printf("[session] login failed for user=%s: %v", username, err)
		return err
	}
	if resp.AccessToken == "" {
		log.Printf("[session] login for user=%s returned no access token", username)
		return ErrTokenMissing
	}

	gen := m.install(resp.AccessToken)
	if err := m.store.Save(resp.AccessToken); err != nil {
		log.Printf("[session] warning: failed to persist credential: %v", err)
	}

	m.resolve(ctx, gen)
	return nil
}

// ResolveIdentity fetches the profile for the current credential. Any failure
// forces a full logout. It returns the resulting state.
func (m *Manager) ResolveIdentity(ctx context.Context) model.State {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	gen := m.gen
	m.mu.RUnlock()

	return m.resolve(ctx, gen)
}

// Restore loads a persisted credential, if any, and resolves its identity.
func (m *Manager) Restore(ctx context.Context) model.State {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	persisted, err := m.store.Load()
	if err != nil {
		log.Printf("[session] warning: failed to load persisted credential: %v", err)
		return m.State()
	}
	if persisted == "" {
		return m.State()
	}

	log.Println("[session] restoring persisted credential")
	gen := m.install(persisted)
	return m.resolve(ctx, gen)
}

// Logout clears the credential, the identity, the persisted entry and the
// transport authorization. It never fails.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.gen++
	m.state = model.StateLoggedOut
	m.token = ""
	m.identity = nil
	m.mu.Unlock()

	if err := m.store.Delete(); err != nil {
		log.Printf("[session] warning: failed to remove persisted credential: %v", err)
	}
	m.api.ClearBearer()
}

// State returns the current lifecycle state.
func (m *Manager) State() model.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Identity returns a copy of the resolved identity, or nil.
func (m *Manager) Identity() model.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity.Clone()
}

// Authorized reports whether protected operations may proceed.
func (m *Manager) Authorized() bool {
	return m.Snapshot().Authorized()
}

// Snapshot returns an immutable view of the session.
func (m *Manager) Snapshot() model.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.Snapshot{
		State:    m.state,
		Token:    m.token,
		Identity: m.identity.Clone(),
	}
}

// install records a fresh credential and attaches it to the transport.
func (m *Manager) install(tok string) uint64 {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.state = model.StateAuthenticating
	m.token = tok
	m.identity = nil
	m.mu.Unlock()

	m.api.SetBearer(tok)
	return gen
}

func (m *Manager) resolve(ctx context.Context, gen uint64) model.State {
	m.mu.RLock()
	hasToken := m.token != ""
	m.mu.RUnlock()
	if !hasToken {
		m.Logout()
		return model.StateLoggedOut
	}

	var identity model.Identity
	err := m.api.Do(ctx, http.MethodGet, IdentityPath, nil, &identity)
	if err == nil && identity == nil {
		err = errors.New("identity endpoint returned an empty profile")
	}

	m.mu.Lock()
	if m.gen != gen {
		// Logged out or replaced while the lookup was in flight.
		state := m.state
		m.mu.Unlock()
		return state
	}
	if err != nil {
		m.mu.Unlock()
		log.Printf("[session] identity resolution failed, logging out: %v", err)
		m.Logout()
		return model.StateLoggedOut
	}
	m.identity = identity
	m.state = model.StateLoggedIn
	m.mu.Unlock()

	log.Printf("[session] authenticated as %s", identity.Name())
	return model.StateLoggedIn
}
