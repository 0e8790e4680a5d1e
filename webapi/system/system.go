// Package system exposes the destructive reset endpoint used to reseed demo
// environments.
package system

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/middleware"
	"github.com/lottohq/lottery/webapi/common"
)

// Routes registers the system endpoints.
func Routes(fiberApp *fiber.App, a *app.App) {
	admin := []fiber.Handler{
		middleware.JwtProtected(a.Config.Jwt),
		middleware.NotRevoked(a.AuthService),
		middleware.RequireRoles("admin"),
	}
	fiberApp.Get("/system/reset", append(admin, Reset(a))...)
}

// Reset wipes prizes, tickets and users, then seeds the default admin.
func Reset(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seeded, err := a.UserService.SystemReset(c.UserContext())
		if err != nil {
			return common.DomainErrorJSON(c, "Reset failed", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "System reset", seeded)
	}
}
