package session

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfinance/internal/client/storage"
	"github.com/dmitrijs2005/gophfinance/internal/common"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func newManager(t *testing.T) (*Manager, *storage.MemoryStore) {
	t.Helper()
	st := storage.NewMemoryStore()
	return New(st, logging.Nop(), WithClock(func() time.Time { return fixedNow })), st
}

// failingStore errors on every read.
type failingStore struct{ *storage.MemoryStore }

func (f *failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestClaims_MalformedTokensReadAsAbsent(t *testing.T) {
	b64 := base64.RawURLEncoding.EncodeToString

	tests := []struct {
		name  string
		token string
	}{
		{name: "one segment", token: "abc"},
		{name: "two segments", token: "a.b"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "middle not base64", token: "x.!!!.y"},
		{name: "middle not json", token: "x." + b64([]byte("not json")) + ".y"},
		{name: "middle json array", token: "x." + b64([]byte(`[1,2]`)) + ".y"},
		{name: "exp wrong type", token: "x." + b64([]byte(`{"sub":"a","exp":"soon"}`)) + ".y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)
			ctx := context.Background()
			require.NoError(t, m.SetToken(ctx, tt.token))

			c, ok := m.Claims(ctx)
			assert.False(t, ok)
			assert.Nil(t, c)
			assert.False(t, m.IsAuthenticated(ctx))
			assert.True(t, m.IsExpired(ctx))

			_, ok = m.Identity(ctx)
			assert.False(t, ok)

			// the raw token is still stored; the guard only looks at presence
			assert.True(t, m.HasToken(ctx))
		})
	}
}

func TestDecodeClaims_WrapsInvalidToken(t *testing.T) {
	_, err := decodeClaims("only.two")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecodeClaims_KeepsUnregisteredFields(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"sub": "a@b.com", "exp": fixedNow.Add(time.Hour).Unix(), "role": "ADMIN"})

	c, err := decodeClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", c.Subject)
	assert.Equal(t, `"ADMIN"`, string(c.Extra["role"]))
	assert.NotContains(t, c.Extra, "sub")
}

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   bool
	}{
		{name: "future exp", claims: jwt.MapClaims{"sub": "u", "exp": fixedNow.Add(time.Minute).Unix()}, want: false},
		{name: "exp equals now", claims: jwt.MapClaims{"sub": "u", "exp": fixedNow.Unix()}, want: true},
		{name: "past exp", claims: jwt.MapClaims{"sub": "u", "exp": fixedNow.Add(-time.Second).Unix()}, want: true},
		{name: "no exp", claims: jwt.MapClaims{"sub": "u"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)
			ctx := context.Background()
			require.NoError(t, m.SetToken(ctx, signed(t, tt.claims)))

			assert.Equal(t, tt.want, m.IsExpired(ctx))
			assert.Equal(t, !tt.want, m.IsAuthenticated(ctx))
		})
	}
}

func TestNoToken(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, ok := m.Token(ctx)
	assert.False(t, ok)
	assert.False(t, m.HasToken(ctx))
	assert.True(t, m.IsExpired(ctx))
	assert.False(t, m.IsAuthenticated(ctx))
	_, ok = m.Identity(ctx)
	assert.False(t, ok)
}

func TestSetToken_StoresTokenAndDisplayName(t *testing.T) {
	m, st := newManager(t)
	ctx := context.Background()
	tok := signed(t, jwt.MapClaims{"sub": "a@b.com", "exp": fixedNow.Add(time.Hour).Unix()})

	require.NoError(t, m.SetToken(ctx, tok))

	got, ok := m.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, tok, got)

	id, ok := m.Identity(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", id)

	name, ok := m.Username(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", name)

	raw, err := st.Get(ctx, common.UsernameStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", string(raw))
}

func TestSetToken_UndecodableDropsStaleUsername(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetToken(ctx, signed(t, jwt.MapClaims{"sub": "old@b.com"})))
	require.NoError(t, m.SetToken(ctx, "garbage"))

	_, ok := m.Username(ctx)
	assert.False(t, ok)
}

func TestIdentity_FollowsExternalWrites(t *testing.T) {
	m, st := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetToken(ctx, signed(t, jwt.MapClaims{"sub": "first@b.com"})))
	// another process rewrites the slot behind our back
	require.NoError(t, st.Set(ctx, common.TokenStorageKey, []byte(signed(t, jwt.MapClaims{"sub": "second@b.com"}))))

	id, ok := m.Identity(ctx)
	require.True(t, ok)
	assert.Equal(t, "second@b.com", id)
}

func TestClear(t *testing.T) {
	m, st := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.SetToken(ctx, signed(t, jwt.MapClaims{"sub": "a@b.com"})))

	require.NoError(t, m.Clear(ctx))
	require.NoError(t, m.Clear(ctx))

	for _, k := range []string{common.TokenStorageKey, common.UsernameStorageKey} {
		v, err := st.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
	assert.False(t, m.HasToken(ctx))
}

func TestStorageErrorReadsAsNoSession(t *testing.T) {
	st := &failingStore{MemoryStore: storage.NewMemoryStore()}
	m := New(st, logging.Nop())
	ctx := context.Background()

	assert.False(t, m.HasToken(ctx))
	_, ok := m.Claims(ctx)
	assert.False(t, ok)
	assert.True(t, m.IsExpired(ctx))
}

func TestTokenSource(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	ts := m.TokenSource(ctx)

	_, err := ts.Token()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, m.SetToken(ctx, "a.b.c"))
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}
