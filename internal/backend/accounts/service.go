package accounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"petstore-client/internal/ports/auth"
)

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

// PasswordHasher abstrae bcrypt (o lo que sea) para tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         RoleCustomer,
		PasswordHash: hash,
		DateJoined:   s.now(),
	})
}

// Authenticate valida credenciales y emite un par access/refresh.
func (s *Service) Authenticate(ctx context.Context, username, password string) (auth.TokenPair, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(ClaimsFor(u))
}

// Refresh emite un access nuevo a partir de un refresh válido.
func (s *Service) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.ParseRefresh(ctx, refresh)
	if err != nil {
		return "", ErrInvalidToken
	}

	// El usuario tiene que seguir existiendo.
	u, err := s.Profile(ctx, claims)
	if err != nil {
		return "", ErrInvalidToken
	}
	return s.tokens.IssueAccess(ClaimsFor(u))
}

func (s *Service) Profile(ctx context.Context, claims auth.Claims) (User, error) {
	id, err := UserID(claims)
	if err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func ClaimsFor(u User) auth.Claims {
	return auth.Claims{
		UserID:   strconv.FormatInt(u.ID, 10),
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// UserID parsea el ID numérico de los claims.
func UserID(c auth.Claims) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.UserID), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
