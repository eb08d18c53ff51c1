package session

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/gophfinance/internal/client/storage"
	"github.com/dmitrijs2005/gophfinance/internal/common"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

// ErrNoToken is returned by the TokenSource when nobody is signed in.
var ErrNoToken = errors.New("no session token")

// Manager reads and writes the session slot.
type Manager struct {
	store storage.Store
	log   logging.Logger
	now   func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func New(store storage.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   log.With("component", "session"),
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SetToken stores token as-is, replacing any previous one. When the token
// decodes, its subject is also written under common.UsernameStorageKey for
// display; otherwise a stale username is removed.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	c, err := decodeClaims(token)
	if err != nil || c.Subject == "" {
		if err := m.store.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
			return err
		}
		return m.store.Delete(ctx, common.UsernameStorageKey)
	}

	return m.store.SetMany(ctx, map[string][]byte{
		common.TokenStorageKey:    []byte(token),
		common.UsernameStorageKey: []byte(c.Subject),
	})
}

// Token returns the stored token. A storage failure reads as "no token".
func (m *Manager) Token(ctx context.Context) (string, bool) {
	v, err := m.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		m.log.Warn(ctx, "reading session token failed", "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// HasToken reports whether any token is stored, valid or not.
func (m *Manager) HasToken(ctx context.Context) bool {
	_, ok := m.Token(ctx)
	return ok
}

// Claims decodes the stored token. Any failure is logged and reported as
// absent.
func (m *Manager) Claims(ctx context.Context) (*Claims, bool) {
	token, ok := m.Token(ctx)
	if !ok {
		return nil, false
	}
	c, err := decodeClaims(token)
	if err != nil {
		m.log.Warn(ctx, "session token is not decodable", "error", err)
		return nil, false
	}
	return c, true
}

// IsExpired is true when there are no claims, no exp claim, or exp is not
// after now.
func (m *Manager) IsExpired(ctx context.Context) bool {
	c, ok := m.Claims(ctx)
	if !ok || c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(m.now())
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.HasToken(ctx) && !m.IsExpired(ctx)
}

// Identity is the token's subject claim.
func (m *Manager) Identity(ctx context.Context) (string, bool) {
	c, ok := m.Claims(ctx)
	if !ok || c.Subject == "" {
		return "", false
	}
	return c.Subject, true
}

// Username returns the display name written by SetToken.
func (m *Manager) Username(ctx context.Context) (string, bool) {
	v, err := m.store.Get(ctx, common.UsernameStorageKey)
	if err != nil {
		m.log.Warn(ctx, "reading username failed", "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// Clear signs out by removing the token and the username.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, common.TokenStorageKey, common.UsernameStorageKey)
}

// TokenSource adapts the slot to oauth2. Each Token call re-reads the store.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, m: m}
}

type tokenSource struct {
	ctx context.Context
	m   *Manager
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	tok, ok := ts.m.Token(ts.ctx)
	if !ok {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
