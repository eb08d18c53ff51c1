package devbackend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfinance/internal/common"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("ana@example.com", secret, time.Hour, t0)
	require.NoError(t, err)

	sub, err := SubjectFromToken(tok, secret, clock(t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", sub)
}

func TestSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, time.Hour, t0)
	require.NoError(t, err)

	_, err = SubjectFromToken(tok, secret, clock(t0.Add(2*time.Hour)))
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour, t0)
	require.NoError(t, err)

	_, err = SubjectFromToken(tok, []byte("wrong-secret"), clock(t0))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSubjectFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := SubjectFromToken("not.a.jwt", []byte("k"), clock(t0))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
