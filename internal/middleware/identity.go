package middleware

import (
	"burpp/pkg/httperror"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewIdentityMiddleware trusts the identity headers injected by the upstream
// auth gateway. Authentication itself happens there; this only lifts the
// already-verified identity into the request context.
func NewIdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get("X-User-Id"))
		userRole := strings.TrimSpace(c.Get("X-User-Role"))

		if userID == "" {
			return unauthorized(c)
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = context.WithValue(userCtx, "UserID", userID)
		userCtx = context.WithValue(userCtx, "UserRole", userRole)

		c.SetUserContext(userCtx)
		return c.Next()
	}
}

// NewAdminMiddleware gates the back-office routes. Runs after the identity
// middleware.
func NewAdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.UserContext().Value("UserRole").(string)
		if role != "admin" {
			err := httperror.Forbidden(
				"burpp.admin.forbidden",
				"Admin access required",
				nil,
			)

			return c.Status(err.Status).JSON(fiber.Map{
				"code":    err.Code,
				"message": err.Message,
			})
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	err := httperror.Unauthorized(
		"burpp.identity.unauthorized",
		"Missing identity headers",
		nil,
	)

	return c.Status(err.Status).JSON(fiber.Map{
		"code":    err.Code,
		"message": err.Message,
	})
}
