// Package middleware holds the Fiber middleware chain for authenticated
// routes: JWT verification, revocation lookup, and role checks.
package middleware

import (
	"context"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/config"
)

// RevocationChecker answers whether a verified token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// JwtProtected verifies the Authorization bearer token signature and expiry,
// storing the parsed token in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// NotRevoked rejects tokens that were revoked by logout. Runs after
// JwtProtected, so the signature is already verified.
func NotRevoked(checker RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		revoked, err := checker.IsRevoked(c.UserContext(), raw)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"status": "error", "message": "Revocation check failed", "data": nil})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Token has been revoked", "data": nil})
		}
		return c.Next()
	}
}

// RequireRoles limits a route to callers whose token carries one of the
// given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := TokenRole(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Missing role claim", "data": nil})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"status": "error", "message": "Insufficient role", "data": nil})
	}
}

// TokenUserID extracts the authenticated user's ID from the parsed token.
func TokenUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	claims, ok := tokenClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// TokenRole extracts the authenticated user's role from the parsed token.
func TokenRole(c *fiber.Ctx) (string, bool) {
	claims, ok := tokenClaims(c)
	if !ok {
		return "", false
	}
	role, ok := claims["role"].(string)
	return role, ok
}

// RawToken returns the bearer token exactly as presented, for revocation.
func RawToken(c *fiber.Ctx) string {
	return strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
