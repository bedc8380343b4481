package handlers

import (
	"errors"
	"net/http"

	"jobi-server/internal/api/middleware"
	"jobi-server/internal/auth"
	"jobi-server/internal/logging"
	"jobi-server/pkg/models"
	"jobi-server/pkg/utils"

	"github.com/labstack/echo/v4"
)

// LoginHandler performs the email/password credential exchange against the
// identity provider and returns a session token
func LoginHandler(gateway *auth.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.LogWithRequestID(requestID(c))

		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Invalid request format")
		}

		if err := validate.Struct(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "validation_failed", err.Error())
		}

		token, expiresAt, user, err := gateway.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return errorJSON(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
			}

			logger.Error("Credential exchange failed", map[string]interface{}{
				"error": err.Error(),
			})

			var cerr *utils.CustomError
			if errors.As(err, &cerr) {
				return errorJSON(c, cerr.Code, "login_failed", cerr.Message)
			}
			return errorJSON(c, http.StatusBadGateway, "login_failed", "Identity provider request failed")
		}

		return c.JSON(http.StatusOK, models.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      *user,
			IsAdmin:   gateway.IsAdmin(user),
		})
	}
}

// SessionHandler describes the current session. An anonymous request gets a
// null user rather than an error.
func SessionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.SessionResponse{
			User:    middleware.CurrentUser(c),
			IsAdmin: middleware.IsAdmin(c),
		})
	}
}
