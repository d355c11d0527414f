// Package handler contains the HTTP handlers for the application.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"habitat/config"
	"habitat/internal/delivery/http/response"
	"habitat/internal/domain/entity"
	"habitat/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc          usecase.AuthUsecase
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	frontendURL := ""
	if cfg != nil && cfg.Frontend != nil {
		frontendURL = cfg.Frontend.URL
	}

	return &AuthHandler{
		uc:          uc,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// loginRequest accepts either identifier; incomplete credentials come back as
// 401, not 400, so none of the fields carry validation tags.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public shape of an account. The credential never
// leaves the service.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Provider string `json:"provider"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token: output.Token,
		User:  toUserResponse(output.User),
	}, "Login successful")
}

// Logout acknowledges the client discarding its token. Tokens are stateless
// and expire on their own, so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Logged out successfully")
}

// GoogleLogin initiates the federated login flow by redirecting the browser
// to the provider's authorization page.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	oauthURL := h.uc.GoogleAuthURL(c.Request().Context())

	if c.QueryParam("redirect") == "false" {
		return response.Success(c, http.StatusOK, map[string]string{"oauth_url": oauthURL}, "Authorization URL generated")
	}

	return c.Redirect(http.StatusTemporaryRedirect, oauthURL)
}

// GoogleCallback handles the provider redirect. Success and failure both
// land on the frontend; the browser never sees a bare API error page.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	input := &usecase.GoogleCallbackInput{
		Code:  c.QueryParam("code"),
		State: c.QueryParam("state"),
	}

	if input.Code == "" || input.State == "" {
		return h.redirectWithError(c, "missing callback parameters")
	}

	output, err := h.uc.GoogleCallback(c.Request().Context(), input)
	if err != nil {
		h.logger.Warn("Federated login failed", slog.Any("error", err))

		return h.redirectWithError(c, "authentication failed")
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s", h.frontendURL, url.QueryEscape(output.Token)))
}

func (h *AuthHandler) redirectWithError(c echo.Context, reason string) error {
	return c.Redirect(http.StatusFound, fmt.Sprintf("%s?error=%s", h.frontendURL, url.QueryEscape(reason)))
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		Provider: user.Provider.String(),
	}
}
