package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"petstore-client/internal/ports/auth"
)

func TestIssuePair_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)

	in := auth.Claims{UserID: "7", Username: "ana", Role: "customer"}
	pair, err := iss.IssuePair(in)
	require.NoError(t, err)
	require.NotEqual(t, pair.Access, pair.Refresh)

	got, err := iss.Verify(context.Background(), pair.Access)
	require.NoError(t, err)
	require.Equal(t, in, got)

	got, err = iss.ParseRefresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)

	pair, err := iss.IssuePair(auth.Claims{UserID: "1"})
	require.NoError(t, err)

	_, err = iss.Verify(context.Background(), pair.Refresh)
	require.ErrorIs(t, err, ErrWrongTokenType)
	_, err = iss.ParseRefresh(context.Background(), pair.Access)
	require.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerify_ExpiredAndForeignTokens(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)

	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return issued }
	access, err := iss.IssueAccess(auth.Claims{UserID: "1"})
	require.NoError(t, err)

	iss.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = iss.Verify(context.Background(), access)
	require.ErrorIs(t, err, gojwt.ErrTokenExpired)

	other, err := NewIssuer("other", time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueAccess(auth.Claims{UserID: "1"})
	require.NoError(t, err)
	_, err = iss.Verify(context.Background(), foreign)
	require.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)

	_, err = iss.Verify(context.Background(), " ")
	require.ErrorIs(t, err, ErrTokenEmpty)
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Minute)
	require.ErrorIs(t, err, ErrSecretRequired)
}
