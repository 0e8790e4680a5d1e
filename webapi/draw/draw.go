// Package draw exposes the lottery draw endpoints.
package draw

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/middleware"
	"github.com/lottohq/lottery/webapi/common"
)

type CreateDrawInput struct {
	Name     string    `json:"name" validate:"required,max=100"`
	DrawDate time.Time `json:"draw_date" validate:"required"`
}

type UpdateDrawInput struct {
	Name     *string    `json:"name" validate:"omitempty,max=100"`
	DrawDate *time.Time `json:"draw_date"`
	Open     *bool      `json:"open"`
}

// Routes registers draw endpoints; reads are authenticated, mutations admin.
func Routes(fiberApp *fiber.App, a *app.App) {
	protected := []fiber.Handler{
		middleware.JwtProtected(a.Config.Jwt),
		middleware.NotRevoked(a.AuthService),
	}
	admin := append(append([]fiber.Handler{}, protected...), middleware.RequireRoles("admin"))

	fiberApp.Get("/draws", append(protected, ListDraws(a))...)
	fiberApp.Post("/draws", append(admin, CreateDraw(a))...)
	fiberApp.Get("/draws/:id", append(protected, GetDraw(a))...)
	fiberApp.Put("/draws/:id", append(admin, UpdateDraw(a))...)
	fiberApp.Delete("/draws/:id", append(admin, DeleteDraw(a))...)
}

// ListDraws returns the paginated draw list.
func ListDraws(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := common.ParseListOptions(c)
		draws, total, err := a.DrawService.List(c.UserContext(), opts)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't list draws", err)
		}
		return common.ListJSON(c, "Draws", draws, common.NewListMeta(opts.Page, opts.Limit, total))
	}
}

// CreateDraw registers a new open draw.
func CreateDraw(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateDrawInput](c)
		if err != nil {
			return nil
		}
		created, err := a.DrawService.Create(c.UserContext(), &dto.DrawCreate{
			Name:     input.Name,
			DrawDate: input.DrawDate,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't create draw", err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, "Draw created", created)
	}
}

// GetDraw retrieves a draw by ID.
func GetDraw(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid draw ID", err.Error())
		}
		found, err := a.DrawService.Get(c.UserContext(), id)
		if err != nil {
			return common.DomainErrorJSON(c, "No draw found", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Draw found", found)
	}
}

// UpdateDraw patches draw fields.
func UpdateDraw(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid draw ID", err.Error())
		}
		input, err := common.BindAndValidate[UpdateDrawInput](c)
		if err != nil {
			return nil
		}
		updated, err := a.DrawService.Update(c.UserContext(), id, &dto.DrawUpdate{
			Name:     input.Name,
			DrawDate: input.DrawDate,
			Open:     input.Open,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't update draw", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Draw updated", updated)
	}
}

// DeleteDraw removes a draw.
func DeleteDraw(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid draw ID", err.Error())
		}
		if err := a.DrawService.Delete(c.UserContext(), id); err != nil {
			return common.DomainErrorJSON(c, "Couldn't delete draw", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
