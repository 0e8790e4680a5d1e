// Package auth exposes the token endpoints: login issues a JWT, logout
// revokes it for the remainder of its lifetime.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lottohq/lottery/pkg/config"
	"github.com/lottohq/lottery/pkg/middleware"
	authsvc "github.com/lottohq/lottery/pkg/service/auth"
	"github.com/lottohq/lottery/webapi/common"
)

type LoginInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// Routes registers the auth endpoints.
func Routes(app *fiber.App, svc *authsvc.Service, cfg *config.App) {
	app.Post("/auth/token", Login(svc))
	app.Delete("/auth/token", middleware.JwtProtected(cfg.Jwt), Logout(svc))
}

// Login authenticates a username/password pair and returns a bearer token.
// Unknown usernames and wrong passwords produce the same 401.
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if err != nil {
			return nil
		}
		token, user, err := svc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(
				c,
				common.ErrorToStatusCode(err),
				"Invalid username or password",
				nil,
			)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"token": token,
			"user":  user,
		})
	}
}

// Logout revokes the presented token. Always 204; revoking an already
// invalid token is a no-op.
func Logout(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext(), middleware.RawToken(c)); err != nil {
			return common.DomainErrorJSON(c, "Logout failed", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
