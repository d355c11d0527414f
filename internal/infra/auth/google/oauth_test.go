package google

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"habitat/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthService(t *testing.T) *OAuthService {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:8080/oauth2/callback/google",
		},
	}

	return NewOAuthService(cfg).(*OAuthService)
}

func TestBuildAuthorizationURL(t *testing.T) {
	svc := newTestOAuthService(t)

	authURL := svc.BuildAuthorizationURL()

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authURL, googleOAuthURL))

	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "openid email profile", query.Get("scope"))
	assert.NotEmpty(t, query.Get("state"))
}

func TestValidateState_SingleUse(t *testing.T) {
	svc := newTestOAuthService(t)

	authURL := svc.BuildAuthorizationURL()
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")

	assert.True(t, svc.ValidateState(state))
	// A state is consumed on first use.
	assert.False(t, svc.ValidateState(state))
}

func TestValidateState_Unknown(t *testing.T) {
	svc := newTestOAuthService(t)

	assert.False(t, svc.ValidateState("never-issued"))
}

func TestValidateState_Expired(t *testing.T) {
	svc := newTestOAuthService(t)

	svc.stateMutex.Lock()
	svc.stateStore["stale"] = time.Now().Add(-time.Minute)
	svc.stateMutex.Unlock()

	assert.False(t, svc.ValidateState("stale"))
}

func TestBuildAuthorizationURL_FreshStatePerCall(t *testing.T) {
	svc := newTestOAuthService(t)

	first, err := url.Parse(svc.BuildAuthorizationURL())
	require.NoError(t, err)
	second, err := url.Parse(svc.BuildAuthorizationURL())
	require.NoError(t, err)

	assert.NotEqual(t, first.Query().Get("state"), second.Query().Get("state"))
}
