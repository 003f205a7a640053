// Package auth holds the studio's identity session.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Session keeps the access token of the signed-in principal. The token is
// verified by the backend; the client only reads its claims.
type Session struct {
	mu        sync.RWMutex
	token     string
	principal models.Principal
	expiresAt time.Time

	now func() time.Time
}

func NewSession() *Session {
	return &Session{now: time.Now}
}

// SignIn replaces the current identity with the one carried by token.
func (s *Session) SignIn(token string) (models.Principal, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	principal, err := models.ParsePrincipal(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if principal.IsAnonymous() {
		return "", fmt.Errorf("%w: anonymous subject", common.ErrInvalidToken)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
		if !s.now().Before(expiresAt) {
			return "", common.ErrTokenExpired
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.principal = principal
	s.expiresAt = expiresAt
	return principal, nil
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.principal = ""
	s.expiresAt = time.Time{}
}

// CurrentIdentity returns the signed-in principal. An expired token counts
// as signed out.
func (s *Session) CurrentIdentity() (models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.activeLocked() {
		return "", false
	}
	return s.principal, true
}

// Token returns the access token, or "" when there is no active identity.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.activeLocked() {
		return ""
	}
	return s.token
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) activeLocked() bool {
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || s.now().Before(s.expiresAt)
}

// IsTokenError reports whether err came from a rejected token.
func IsTokenError(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired)
}
