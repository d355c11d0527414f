package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/delivery/http/response"
	"habitat/internal/domain/entity"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the access gate for the HTTP surface. Authenticate only
// resolves the caller's identity; it never rejects a request. Rejection is a
// route-policy decision made by RequireAuthenticated and RequireAdmin.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Authenticate inspects the Authorization header and, when it carries a
// valid bearer token for a known account, attaches the caller's identity to
// the request. A missing, malformed, expired or orphaned token leaves the
// request anonymous and lets it proceed.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return next(c)
		}

		subject, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			m.logger.Debug("Rejected bearer token, proceeding anonymous", slog.Any("error", err))

			return next(c)
		}

		user, err := m.userRepo.FindByUsername(c.Request().Context(), subject)
		if err != nil {
			// Token subjects can outlive their account.
			m.logger.Debug("Token subject has no account, proceeding anonymous", slog.String("subject", subject))

			return next(c)
		}

		deliverycontext.SetIdentity(c, &deliverycontext.Identity{
			Username: user.Username,
			Role:     user.Role.String(),
		})

		return next(c)
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
// It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetIdentity(c); !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		return next(c)
	}
}

// RequireAdmin rejects requests whose caller is not an administrator.
// Anonymous callers get 401, authenticated non-admins get 403.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := deliverycontext.GetIdentity(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		if identity.Role != entity.RoleAdmin.String() {
			return response.Forbidden(c, "FORBIDDEN", "Administrator role required")
		}

		return next(c)
	}
}
