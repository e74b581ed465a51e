// Package auth is the mocked session layer. Any email logs in as the
// demo engineer; sessions live in memory for the life of the process.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Role of a logged-in user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type session struct {
	user    User
	created time.Time
}

// Sessions issues and validates bearer tokens.
type Sessions struct {
	mu      sync.Mutex
	byToken map[string]session
	ttl     time.Duration
	now     func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		byToken: make(map[string]session),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Login issues a token for the given email. Authentication is mocked;
// any non-empty address becomes the demo engineer.
func (s *Sessions) Login(email string) (string, User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", User{}, ErrInvalidCredentials
	}

	user := User{
		ID:    "u1",
		Name:  "Demo Engineer",
		Email: email,
		Role:  RoleEngineer,
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.byToken[token] = session{user: user, created: s.now()}
	s.mu.Unlock()
	return token, user, nil
}

// Validate resolves a bearer token to its user. Comparison is constant
// time per candidate so token probing leaks nothing about near-misses.
func (s *Sessions) Validate(token string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for candidate, sess := range s.byToken {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) != 1 {
			continue
		}
		if s.ttl > 0 && s.now().Sub(sess.created) > s.ttl {
			delete(s.byToken, candidate)
			return User{}, false
		}
		return sess.user, true
	}
	return User{}, false
}

// Logout revokes a token. Unknown tokens are a no-op.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

// Sweep drops expired sessions. Meant to run periodically.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for token, sess := range s.byToken {
		if sess.created.Before(cutoff) {
			delete(s.byToken, token)
			removed++
		}
	}
	return removed
}
