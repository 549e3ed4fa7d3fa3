package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"petstore-client/internal/ports/auth"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrSecretRequired = errors.New("jwt secret required")
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"

	// El refresh vive más que el access, como en SimpleJWT.
	refreshFactor = 24
)

// Issuer firma tokens HS256. Implementa auth.AuthVerifier y auth.TokenIssuer.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

type tokenClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	gojwt.RegisteredClaims
}

func (i *Issuer) IssuePair(c auth.Claims) (auth.TokenPair, error) {
	access, err := i.sign(c, typeAccess, i.ttl)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := i.sign(c, typeRefresh, i.ttl*refreshFactor)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) IssueAccess(c auth.Claims) (string, error) {
	return i.sign(c, typeAccess, i.ttl)
}

// Verify valida un access token.
func (i *Issuer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return i.parse(token, typeAccess)
}

// ParseRefresh valida un refresh token.
func (i *Issuer) ParseRefresh(ctx context.Context, token string) (auth.Claims, error) {
	return i.parse(token, typeRefresh)
}

func (i *Issuer) sign(c auth.Claims, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := tokenClaims{
		UserID:    c.UserID,
		Username:  c.Username,
		Role:      c.Role,
		TokenType: tokenType,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.UserID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (i *Issuer) parse(token, wantType string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := gojwt.ParseWithClaims(token, &tokenClaims{}, func(t *gojwt.Token) (any, error) {
		return i.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}
	if claims.TokenType != wantType {
		return auth.Claims{}, ErrWrongTokenType
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, errors.New("token missing user id")
	}

	return auth.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
