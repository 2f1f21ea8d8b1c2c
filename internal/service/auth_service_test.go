package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-copilot/internal/auth"
	"github.com/spec-kit/support-copilot/internal/config"
)

func TestAuthService_IssueToken(t *testing.T) {
	hash, err := auth.HashSecret("s3cret", 4)
	require.NoError(t, err)
	svc := NewAuthService(config.AuthConfig{JWTSecret: "jwt", AccessTokenTTLMinutes: 10, ClientID: "helpdesk", ClientSecretHash: hash})

	meta, token, err := svc.IssueToken(context.Background(), "helpdesk", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "helpdesk", meta.SubjectID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "helpdesk", claims.RegisteredClaims.Subject)

	_, _, err = svc.IssueToken(context.Background(), "helpdesk", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.IssueToken(context.Background(), "someone", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_NoClientConfigured(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "jwt"})
	_, _, err := svc.IssueToken(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
