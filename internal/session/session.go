package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ExpiredHandler is invoked exactly once per token when the session is no
// longer usable, either because the server answered 401 or because the
// token's exp claim lies in the past. The handler typically forces a
// re-login; centralizing it here replaces the per-endpoint logout handling
// the legacy screen carried.
type ExpiredHandler func()

// Session holds the bearer token attached to every API request.
type Session struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	expired   bool
	onExpired ExpiredHandler
	logger    *zap.Logger
}

// New builds an empty session.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{logger: logger}
}

// OnExpired registers the forced re-authentication hook.
func (s *Session) OnExpired(h ExpiredHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = h
}

// SetToken installs a new bearer token and re-arms the expiry hook. The
// token is parsed without signature verification: only the server holds the
// key, the client merely reads the exp claim.
func (s *Session) SetToken(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("parse bearer token: %w", err)
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.expired = false
	return nil
}

// Token returns the current bearer token. When the exp claim has already
// passed the expiry hook fires and an empty token is returned.
func (s *Session) Token() string {
	s.mu.Lock()
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		s.mu.Unlock()
		s.Invalidate()
		return ""
	}
	token := s.token
	s.mu.Unlock()
	return token
}

// ExpiresAt reports when the current token lapses; zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// Invalidate marks the session expired and fires the hook once.
func (s *Session) Invalidate() {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	s.token = ""
	handler := s.onExpired
	s.mu.Unlock()

	s.logger.Warn("session expired, re-authentication required")
	if handler != nil {
		handler()
	}
}
