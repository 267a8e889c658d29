package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/service"
)

// SessionMiddleware reads the session token from the `token` cookie and lets
// the session authority decide whether it authorizes the request. A request
// without the cookie gets 401; any other failure gets 403.
func SessionMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "cookie:" + auth.CookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authorize(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			cause := errors.ErrInvalidSession
			if cookie, cerr := c.Cookie(auth.CookieName); cerr != nil || cookie.Value == "" {
				cause = errors.ErrMissingSession
			}
			httpErr := errors.MapErrorToHTTP(cause)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}
