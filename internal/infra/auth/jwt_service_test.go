package auth

import (
	"testing"
	"time"

	"habitat/config"
	"habitat/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Token = secret
	cfg.Auth = &config.AuthConfig{TokenTTL: ttl}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)

	require.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	token, err := svc.Generate("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", -time.Minute)

	token, err := svc.Generate("alice")
	require.NoError(t, err)

	_, err = svc.Validate(token)

	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, "issuer-secret", time.Hour)
	verifier := newTestJWTService(t, "verifier-secret", time.Hour)

	token, err := issuer.Generate("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)

	require.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	_, err := svc.Validate("not.a.token")

	require.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_Validate_TamperedPayload(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	token, err := svc.Generate("alice")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = svc.Validate(string(tampered))

	require.Error(t, err)
}
