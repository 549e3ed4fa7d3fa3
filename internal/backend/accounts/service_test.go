package accounts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"petstore-client/internal/ports/auth"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	mu     sync.Mutex
	byID   map[int64]User
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Username, u.Username) {
			return User{}, ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// plainHasher evita el costo de bcrypt en tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hash:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if hash != "hash:"+p {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens codifica los claims en el propio token.
type fakeTokens struct{}

func (fakeTokens) IssuePair(c auth.Claims) (auth.TokenPair, error) {
	return auth.TokenPair{Access: "access:" + c.UserID, Refresh: "refresh:" + c.UserID}, nil
}

func (fakeTokens) IssueAccess(c auth.Claims) (string, error) {
	return "access:" + c.UserID, nil
}

func (fakeTokens) ParseRefresh(ctx context.Context, token string) (auth.Claims, error) {
	id, ok := strings.CutPrefix(token, "refresh:")
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: id}, nil
}

func newTestService() *Service {
	return NewService(newTestRepo(), plainHasher{}, fakeTokens{})
}

// -------------------------
// Tests
// -------------------------

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Username: " ana ",
		Email:    "Ana@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, "ana", u.Username)
	require.Equal(t, "ana@example.com", u.Email)
	require.Equal(t, RoleCustomer, u.Role)
	require.NotEqual(t, "supersecret", u.PasswordHash)

	pair, err := svc.Authenticate(ctx, "ana", "supersecret")
	require.NoError(t, err)
	require.Equal(t, "access:1", pair.Access)
	require.Equal(t, "refresh:1", pair.Refresh)

	_, err = svc.Authenticate(ctx, "ana", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ghost", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Duplicates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ana", Email: "a@x.io", Password: "12345678"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ANA", Email: "b@x.io", Password: "12345678"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "A@X.io", Password: "12345678"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRefreshAndProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Username: "ana", Email: "a@x.io", Password: "12345678"})
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, "refresh:1")
	require.NoError(t, err)
	require.Equal(t, "access:1", access)

	_, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Refresh(ctx, "refresh:99")
	require.ErrorIs(t, err, ErrInvalidToken)

	got, err := svc.Profile(ctx, ClaimsFor(u))
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = svc.Profile(ctx, auth.Claims{UserID: "abc"})
	require.ErrorIs(t, err, ErrInvalidToken)
}
