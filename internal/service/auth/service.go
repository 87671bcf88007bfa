package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidToken       = errors.New("Invalid token")
)

// DefaultTTL matches the eight-day token lifetime of the production backend.
const DefaultTTL = 8 * 24 * time.Hour

// User is an account known to the development backend.
type User struct {
	Username string
	Password string
	Role     string
}

// Principal is the identity bound to an issued token.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SeedUsers returns the demo accounts.
func SeedUsers() []User {
	return []User{
		{Username: "admin", Password: "admin123", Role: "admin"},
		{Username: "manager", Password: "manager123", Role: "manager"},
		{Username: "analyst", Password: "analyst123", Role: "analyst"},
	}
}

type grant struct {
	principal Principal
	expiresAt time.Time
}

// Service issues and verifies opaque bearer tokens.
type Service struct {
	users map[string]User
	ttl   time.Duration
	now   func() time.Time

	mu     sync.RWMutex
	grants map[string]grant
}

// NewService creates a token service for the supplied users.
func NewService(users []User, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	index := make(map[string]User, len(users))
	for _, u := range users {
		index[u.Username] = u
	}
	return &Service{
		users:  index,
		ttl:    ttl,
		now:    time.Now,
		grants: make(map[string]grant),
	}
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login checks the credentials and issues a token.
func (s *Service) Login(_ context.Context, username, password string) (string, error) {
	user, ok := s.users[username]
	if !ok || user.Password != password {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.grants[token] = grant{
		principal: Principal{Username: user.Username, Role: user.Role},
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token, nil
}

// Verify resolves a token to its principal.
func (s *Service) Verify(_ context.Context, token string) (Principal, error) {
	s.mu.RLock()
	g, ok := s.grants[token]
	s.mu.RUnlock()
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	if s.now().After(g.expiresAt) {
		s.Revoke(token)
		return Principal{}, ErrInvalidToken
	}
	return g.principal, nil
}

// Revoke invalidates a token.
func (s *Service) Revoke(token string) {
	s.mu.Lock()
	delete(s.grants, token)
	s.mu.Unlock()
}
