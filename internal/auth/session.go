package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sockshoplabs/storefront-go/pkg/storage"
)

// Session is the authenticated state for the active shopper or admin: the
// bearer token plus the expiration derived from its claims.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Authenticated reports whether the session holds a usable token at now.
func (s *Session) Authenticated(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(s.ExpiresAt)
}

// deriveExpiry reads the exp claim without verifying the signature. The
// client never holds the signing secret; expiry is display/bookkeeping data
// and the server re-validates every request.
func deriveExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// SessionStore owns the auth token storage slot. It implements the
// transport's TokenSource so requests pick up the active bearer token.
type SessionStore struct {
	mu      sync.Mutex
	store   storage.Store
	session *Session
	loaded  bool
	now     func() time.Time
}

func NewSessionStore(store storage.Store) (*SessionStore, error) {
	if store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	return &SessionStore{store: store, now: time.Now}, nil
}

// Current returns the active session, restoring it from storage on first
// use. An expired stored token is cleared and reported as no session.
func (s *SessionStore) Current(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(ctx)
}

func (s *SessionStore) currentLocked(ctx context.Context) (*Session, error) {
	if !s.loaded {
		s.loaded = true
		raw, err := s.store.Get(ctx, storage.AuthTokenKey)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read stored token: %w", err)
		}
		expiry, err := deriveExpiry(string(raw))
		if err != nil {
			// Unparseable stored token is discarded, same policy as any
			// other invalid externally-sourced data.
			_ = s.store.Delete(ctx, storage.AuthTokenKey)
			return nil, nil
		}
		s.session = &Session{Token: string(raw), ExpiresAt: expiry}
	}

	if s.session != nil && !s.session.Authenticated(s.now()) {
		s.session = nil
		if err := s.store.Delete(ctx, storage.AuthTokenKey); err != nil {
			return nil, fmt.Errorf("clear expired token: %w", err)
		}
	}
	return s.session, nil
}

// Token implements the transport's TokenSource.
func (s *SessionStore) Token(ctx context.Context) string {
	session, err := s.Current(ctx)
	if err != nil || session == nil {
		return ""
	}
	return session.Token
}

func (s *SessionStore) save(ctx context.Context, token string) (*Session, error) {
	expiry, err := deriveExpiry(token)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, storage.AuthTokenKey, []byte(token)); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	s.loaded = true
	s.session = &Session{Token: token, ExpiresAt: expiry}
	return s.session, nil
}

func (s *SessionStore) clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.session = nil
	return s.store.Delete(ctx, storage.AuthTokenKey)
}
