package auth

import "context"

// AuthVerifier verifica un access token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenPair es el par access/refresh que devuelve el login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer emite pares de tokens y valida refresh tokens.
type TokenIssuer interface {
	IssuePair(c Claims) (TokenPair, error)
	IssueAccess(c Claims) (string, error)
	ParseRefresh(ctx context.Context, token string) (Claims, error)
}
