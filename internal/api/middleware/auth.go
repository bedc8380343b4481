package middleware

import (
	"net/http"
	"strings"
	"time"

	"jobi-server/internal/auth"
	"jobi-server/pkg/models"

	"github.com/labstack/echo/v4"
)

// Context keys for the resolved session
const (
	ContextUserKey    = "session_user"
	ContextIsAdminKey = "session_is_admin"
)

// ResolveSession resolves the bearer session token, if any, into the current
// user. An absent or invalid token leaves the request anonymous; endpoints
// that need a session enforce it themselves.
func ResolveSession(gateway *auth.Gateway) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token != "" {
				if user, err := gateway.Verify(token); err == nil {
					c.Set(ContextUserKey, user)
					c.Set(ContextIsAdminKey, gateway.IsAdmin(user))
				}
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the moderation surface. Non-admin sessions get an
// access-denied body and the handler never runs, so no data fetch happens.
// This is an authorization gate for the view, not a security boundary; the
// external store's rules are the real enforcement.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get(ContextIsAdminKey).(bool)
			if !isAdmin {
				requestID, _ := c.Get("request_id").(string)
				return c.JSON(http.StatusForbidden, models.ErrorResponse{
					Error:     "access_denied",
					Message:   "Admin access required",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the session user resolved for this request, if any
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextUserKey).(*models.User)
	return user
}

// IsAdmin reports whether the request carries an admin session
func IsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Get(ContextIsAdminKey).(bool)
	return isAdmin
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
