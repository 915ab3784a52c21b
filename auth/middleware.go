package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Context keys set by Middleware for downstream handlers.
const (
	ContextUserIDKey = "auth_user_id"
	ContextEmailKey  = "auth_user_email"
)

// Middleware gates routes behind a Bearer token. On success it stores the
// caller's user id and email in the echo context; on any failure it answers
// 401 without detail.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing Bearer token"})
			}

			email, userID, err := tokens.Validate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			c.Set(ContextUserIDKey, userID)
			c.Set(ContextEmailKey, email)
			return next(c)
		}
	}
}

func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user id stored by Middleware.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(ContextUserIDKey).(int64)
	return id
}

// Email returns the authenticated email stored by Middleware.
func Email(c echo.Context) string {
	email, _ := c.Get(ContextEmailKey).(string)
	return email
}
