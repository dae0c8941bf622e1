package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), 24*time.Hour)

	token, err := svc.Issue(42)
	require.NoError(t, err)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService([]byte("secret"), 24*time.Hour).WithClock(func() time.Time { return issued })

	token, err := svc.Issue(7)
	require.NoError(t, err)

	// still valid just before the 24h window closes
	svc.WithClock(func() time.Time { return issued.Add(23 * time.Hour) })
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return issued.Add(25 * time.Hour) })
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService([]byte("right-secret"), time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyPreservesSubject(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), time.Hour)

	tokenA, err := svc.Issue(1)
	require.NoError(t, err)
	tokenB, err := svc.Issue(2)
	require.NoError(t, err)

	idA, err := svc.Verify(tokenA)
	require.NoError(t, err)
	idB, err := svc.Verify(tokenB)
	require.NoError(t, err)

	require.Equal(t, int64(1), idA)
	require.Equal(t, int64(2), idB)
	require.NotEqual(t, tokenA, tokenB)
}
