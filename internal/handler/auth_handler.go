package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/service"
)

// ClaimsContextKey is where the session middleware stores the caller's claims.
const ClaimsContextKey = "session"

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie sets the Secure
// flag on session cookies and should be true in production.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionUser is the identity decoded from a session token.
type SessionUser struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
}

// DashboardResponse represents the admin dashboard probe.
type DashboardResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

// Login godoc
// @Summary Log in as the administrator
// @Description Sets an HTTP-only `token` cookie valid for one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}

	// Missing fields are just bad credentials to the caller.
	if err := c.Validate(&req); err != nil {
		return h.loginFailed(c, errors.ErrInvalidCredentials)
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.loginFailed(c, err)
	}

	c.SetCookie(auth.SessionCookie(token, h.secureCookie))
	log.Printf("login succeeded for %s", req.Email)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged in successfully"})
}

func (h *AuthHandler) loginFailed(c echo.Context, err error) error {
	log.Printf("login failed from %s: %v", c.RealIP(), err)
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. The token itself is revoked only when revocation is enabled.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			log.Printf("logout: %v", err)
		}
	}

	c.SetCookie(auth.ClearedSessionCookie(h.secureCookie))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Dashboard godoc
// @Summary Admin session probe
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrMissingSession)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	user := SessionUser{Email: claims.Email}
	if claims.ExpiresAt != nil {
		user.Exp = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		user.Iat = claims.IssuedAt.Unix()
	}
	return c.JSON(http.StatusOK, DashboardResponse{
		Message: "Welcome to admin dashboard",
		User:    user,
	})
}
