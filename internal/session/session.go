// Package session wraps the persisted login record behind a small
// read/write accessor shared by every view.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/repository"
)

// Sessions reads and writes the single logged-in user record.
type Sessions struct {
	repo repository.SessionRepo
}

// NewSessions creates a Sessions accessor over the given repository.
func NewSessions(repo repository.SessionRepo) *Sessions {
	return &Sessions{repo: repo}
}

// SignIn stores a fresh session. When email is empty it is recovered from
// the token claims.
func (s *Sessions) SignIn(ctx context.Context, role domain.UserRole, email, token string) error {
	if email == "" {
		email = emailFromToken(token)
	}
	if email == "" {
		return fmt.Errorf("signing in: no email available")
	}
	return s.repo.Save(ctx, &domain.StoredSession{
		Role:      role,
		Email:     email,
		Token:     token,
		CreatedAt: time.Now(),
	})
}

// SignOut clears the stored session.
func (s *Sessions) SignOut(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Current returns the logged-in user, or nil when nobody is logged in or
// the stored token has expired.
func (s *Sessions) Current(ctx context.Context) (*domain.User, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	if tokenExpired(stored.Token) {
		return nil, nil
	}
	return stored.User(), nil
}

// Token returns the stored bearer token, or "" when logged out.
// Errors degrade to "" so this can serve as a store.TokenSource.
func (s *Sessions) Token(ctx context.Context) string {
	stored, err := s.repo.Get(ctx)
	if err != nil || stored == nil {
		return ""
	}
	return stored.Token
}

// tokenExpired reports whether the JWT carries an exp claim in the past.
// Opaque or unparsable tokens are treated as non-expiring; the backend is
// the authority and will reject them with a 401 if they are stale.
func tokenExpired(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// emailFromToken extracts the email claim from a JWT, or "".
func emailFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}
