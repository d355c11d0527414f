package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/domain/entity"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"
	mockRepo "habitat/internal/mocks/repository"
	mockSvc "habitat/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gateFixtures struct {
	gate     *AuthMiddleware
	tokenSvc *mockSvc.MockTokenService
	userRepo *mockRepo.MockUserRepository
}

func createTestGate(t *testing.T) *gateFixtures {
	t.Helper()

	tokenSvc := new(mockSvc.MockTokenService)
	userRepo := new(mockRepo.MockUserRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &gateFixtures{
		gate:     NewAuthMiddleware(tokenSvc, userRepo, logger),
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

func runRequest(middlewares []echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, *deliverycontext.Identity) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *deliverycontext.Identity
	handler := func(c echo.Context) error {
		if identity, ok := deliverycontext.GetIdentity(c); ok {
			seen = identity
		}

		return c.NoContent(http.StatusOK)
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	_ = handler(c)

	return rec, seen
}

func TestAuthenticate_AnonymousProceeds(t *testing.T) {
	fixtures := createTestGate(t)

	rec, identity := runRequest([]echo.MiddlewareFunc{fixtures.gate.Authenticate}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, identity)
}

func TestAuthenticate_MalformedHeaderProceeds(t *testing.T) {
	fixtures := createTestGate(t)

	rec, identity := runRequest([]echo.MiddlewareFunc{fixtures.gate.Authenticate}, "Token abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, identity)
	fixtures.tokenSvc.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestAuthenticate_InvalidTokenProceedsAnonymous(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "bad-token").Return("", service.ErrTokenExpired)

	rec, identity := runRequest([]echo.MiddlewareFunc{fixtures.gate.Authenticate}, "Bearer bad-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, identity)
}

func TestAuthenticate_ValidTokenAttachesIdentity(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "good-token").Return("alice", nil)
	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Role: entity.RoleAdmin}, nil)

	rec, identity := runRequest([]echo.MiddlewareFunc{fixtures.gate.Authenticate}, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "ADMIN", identity.Role)
}

func TestAuthenticate_OrphanedSubjectProceedsAnonymous(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "orphan-token").Return("deleted-user", nil)
	fixtures.userRepo.On("FindByUsername", mock.Anything, "deleted-user").
		Return(nil, repository.ErrUserNotFound)

	rec, identity := runRequest([]echo.MiddlewareFunc{fixtures.gate.Authenticate}, "Bearer orphan-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, identity)
}

func TestRequireAuthenticated_RejectsAnonymous(t *testing.T) {
	fixtures := createTestGate(t)

	rec, _ := runRequest([]echo.MiddlewareFunc{
		fixtures.gate.Authenticate,
		fixtures.gate.RequireAuthenticated,
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthenticated_AllowsAuthenticated(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "good-token").Return("alice", nil)
	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Role: entity.RoleUser}, nil)

	rec, _ := runRequest([]echo.MiddlewareFunc{
		fixtures.gate.Authenticate,
		fixtures.gate.RequireAuthenticated,
	}, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsAnonymousWith401(t *testing.T) {
	fixtures := createTestGate(t)

	rec, _ := runRequest([]echo.MiddlewareFunc{
		fixtures.gate.Authenticate,
		fixtures.gate.RequireAdmin,
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_RejectsNonAdminWith403(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "user-token").Return("bob", nil)
	fixtures.userRepo.On("FindByUsername", mock.Anything, "bob").
		Return(&entity.User{ID: 2, Username: "bob", Role: entity.RoleUser}, nil)

	rec, _ := runRequest([]echo.MiddlewareFunc{
		fixtures.gate.Authenticate,
		fixtures.gate.RequireAdmin,
	}, "Bearer user-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	fixtures := createTestGate(t)

	fixtures.tokenSvc.On("Validate", "admin-token").Return("alice", nil)
	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Role: entity.RoleAdmin}, nil)

	rec, _ := runRequest([]echo.MiddlewareFunc{
		fixtures.gate.Authenticate,
		fixtures.gate.RequireAdmin,
	}, "Bearer admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}
