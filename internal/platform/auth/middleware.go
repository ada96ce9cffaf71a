package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
	RoleKey    contextKey = "actor_role"
	ScopesKey  contextKey = "actor_scopes"
)

// Claims carries the identity asserted by the MediNexus identity service.
// Role is one of "patient", "doctor", "admin". Scopes, when empty, are
// derived from the role.
type Claims struct {
	jwt.RegisteredClaims
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
}

// DefaultScopes maps a role to the access scopes it implies when the token
// carries none of its own.
func DefaultScopes(role string) []string {
	switch role {
	case "patient":
		return []string{"patient"}
	case "doctor":
		return []string{"primary_doctor"}
	case "admin":
		// Admins match any scope; the empty slice is interpreted as
		// "no restriction" by scope checks.
		return nil
	default:
		return []string{"patient"}
	}
}

// JWTMiddleware validates HS256 bearer tokens and places the actor identity
// on the request context.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			scopes := claims.Scopes
			if len(scopes) == 0 {
				scopes = DefaultScopes(claims.Role)
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ActorIDKey, claims.Subject)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, ScopesKey, scopes)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// DevAuthMiddleware admits unauthenticated requests with an admin identity.
// Used only when the server runs in the development environment.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ActorIDKey, "dev-user")
			ctx = context.WithValue(ctx, RoleKey, "admin")
			ctx = context.WithValue(ctx, ScopesKey, []string(nil))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ActorIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ActorIDKey).(string)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// ScopesFromContext returns the actor's access scopes. A nil slice means the
// actor is unrestricted (admin).
func ScopesFromContext(ctx context.Context) []string {
	scopes, _ := ctx.Value(ScopesKey).([]string)
	return scopes
}

// Unrestricted reports whether the actor may read events regardless of their
// access scope.
func Unrestricted(ctx context.Context) bool {
	return RoleFromContext(ctx) == "admin" || len(ScopesFromContext(ctx)) == 0
}
