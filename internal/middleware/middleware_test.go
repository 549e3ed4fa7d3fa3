package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"petstore-client/internal/platform/logger"
	"petstore-client/internal/ports/auth"
)

type verifierFunc func(ctx context.Context, token string) (auth.Claims, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return f(ctx, token)
}

func TestAuthContext(t *testing.T) {
	v := verifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
		if token != "good" {
			return auth.Claims{}, errors.New("bad token")
		}
		return auth.Claims{UserID: "1", Username: "ana"}, nil
	})

	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))

	cases := []struct {
		header string
		wantOK bool
	}{
		{"Bearer good", true},
		{"bearer good", true},
		{"Bearer bad", false},
		{"Token good", false},
		{"", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, tc.wantOK, ok, "header %q", tc.header)
		if tc.wantOK {
			require.Equal(t, "ana", got.Username)
		}
	}
}

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatText, Out: &buf})

	h := RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/pets/", nil))

	out := buf.String()
	require.Contains(t, out, "status=418")
	require.Contains(t, out, "path=/pets/pets/")
}
