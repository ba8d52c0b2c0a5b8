package auth

import (
	"net/http"
	"strings"

	"banner-service/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const claimsKey = "auth.claims"

// Require returns a fiber middleware that demands a valid bearer token
// granting permission p.
func Require(tokens *TokenService, p Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return deny(c, http.StatusUnauthorized, "Missing bearer token")
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			return deny(c, http.StatusUnauthorized, "Empty token")
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			logger.Get().Debug("Rejected admin token", zap.Error(err))
			return deny(c, http.StatusUnauthorized, "Invalid token")
		}

		if !claims.Has(p) {
			return deny(c, http.StatusForbidden, "Missing permission "+string(p))
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by Require, if any.
func ClaimsFrom(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

func deny(c *fiber.Ctx, status int, msg string) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": msg,
		"ray_id":  rayID,
	})
}
