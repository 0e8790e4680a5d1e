// Package webapi wires the Fiber application: global middleware, the health
// endpoint, and the per-domain route groups under webapi's sub-packages.
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lottohq/lottery/pkg/app"
	authweb "github.com/lottohq/lottery/webapi/auth"
	"github.com/lottohq/lottery/webapi/common"
	drawweb "github.com/lottohq/lottery/webapi/draw"
	prizeweb "github.com/lottohq/lottery/webapi/prize"
	systemweb "github.com/lottohq/lottery/webapi/system"
	ticketweb "github.com/lottohq/lottery/webapi/ticket"
	userweb "github.com/lottohq/lottery/webapi/user"
)

// SetupApp initializes Fiber with the rate limiter, panic recovery, request
// logging, and every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return common.ProblemDetailsJSON(c, fiberErr.Code, fiberErr.Message, nil)
			}
			return common.ProblemDetailsJSON(
				c,
				fiber.StatusInternalServerError,
				"Internal Server Error",
				err.Error(),
			)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to X-Real-IP
	// then the direct peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				fiber.StatusTooManyRequests,
				"Too Many Requests",
				"rate limit exceeded",
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Lottery API is running")
	})

	authweb.Routes(fiberApp, a.AuthService, a.Config)
	userweb.Routes(fiberApp, a)
	ticketweb.Routes(fiberApp, a)
	prizeweb.Routes(fiberApp, a)
	drawweb.Routes(fiberApp, a)
	systemweb.Routes(fiberApp, a)

	return fiberApp
}
