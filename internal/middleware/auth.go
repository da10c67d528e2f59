package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/tokens"
)

const claimsKey = "claims"

type Auth struct {
	JWTSecret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{JWTSecret: secret}
}

// RequireAuth parses the bearer token and stores the verified claims in the
// request context. Every failure is the same generic 401.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

// RequireAdmin layers an admin check on top of RequireAuth.
func (m *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin required")
		}
		return next(c)
	})
}

func ClaimsFrom(c echo.Context) (*tokens.SessionClaims, bool) {
	claims, ok := c.Get(claimsKey).(*tokens.SessionClaims)
	return claims, ok
}
