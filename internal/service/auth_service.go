package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/spec-kit/support-copilot/internal/auth"
	"github.com/spec-kit/support-copilot/internal/config"
	"github.com/spec-kit/support-copilot/internal/domain"
)

// ErrInvalidCredentials is returned for unknown client ids or wrong secrets.
var ErrInvalidCredentials = errors.New("invalid client credentials")

// AuthService issues API tokens to the configured client.
type AuthService struct {
	clientID   string
	secretHash string
	tokenMgr   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		clientID:   cfg.ClientID,
		secretHash: cfg.ClientSecretHash,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// IssueToken exchanges client credentials for a bearer token.
func (s *AuthService) IssueToken(_ context.Context, clientID, secret string) (domain.Token, string, error) {
	if s.clientID == "" || s.secretHash == "" {
		return domain.Token{}, "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(clientID), []byte(s.clientID)) != 1 {
		return domain.Token{}, "", ErrInvalidCredentials
	}
	if err := auth.CompareSecret(s.secretHash, secret); err != nil {
		return domain.Token{}, "", ErrInvalidCredentials
	}
	return s.tokenMgr.GenerateToken(clientID)
}
