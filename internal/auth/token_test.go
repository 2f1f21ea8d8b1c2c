package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-copilot/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	meta, signed, err := tm.GenerateToken("helpdesk")
	require.NoError(t, err)
	assert.Equal(t, "helpdesk", meta.SubjectID)
	assert.Equal(t, 5*time.Minute, meta.ExpiresAt.Sub(meta.IssuedAt))

	claims, err := tm.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeClient, claims.Subject)
	assert.Equal(t, "helpdesk", claims.RegisteredClaims.Subject)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	_, signed, err := NewTokenManager("other", 5).GenerateToken("helpdesk")
	require.NoError(t, err)

	_, err = tm.ParseToken(signed)
	assert.Error(t, err)

	expired := NewTokenManager("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	_, signed, err = expired.GenerateToken("helpdesk")
	require.NoError(t, err)
	_, err = tm.ParseToken(signed)
	assert.Error(t, err)
}

func TestSecretHashing(t *testing.T) {
	hash, err := HashSecret("s3cret", 4)
	require.NoError(t, err)
	assert.NoError(t, CompareSecret(hash, "s3cret"))
	assert.Error(t, CompareSecret(hash, "wrong"))
}
