// Package prize exposes the admin prize endpoints, including the RANKED and
// LAST creation modes.
package prize

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/app"
	domainprize "github.com/lottohq/lottery/pkg/domain/prize"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/middleware"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/webapi/common"
)

type CreatePrizeInput struct {
	// Mode RANKED awards the exact ticket number; LAST awards every ticket
	// number ending with TicketNumber's digits.
	Mode             string       `json:"mode" validate:"required,oneof=RANKED LAST"`
	TicketNumber     string       `json:"ticket_number" validate:"required,min=1,max=6,numeric"`
	PrizeDescription string       `json:"prize_description" validate:"required,max=200"`
	PrizeAmount      money.Amount `json:"prize_amount" validate:"required,gt=0"`
}

type UpdatePrizeInput struct {
	PrizeDescription *string       `json:"prize_description" validate:"omitempty,max=200"`
	PrizeAmount      *money.Amount `json:"prize_amount" validate:"omitempty,gt=0"`
	WinningTicketID  *uuid.UUID    `json:"winning_ticket_id"`
}

// Routes registers the admin prize endpoints.
func Routes(fiberApp *fiber.App, a *app.App) {
	admin := []fiber.Handler{
		middleware.JwtProtected(a.Config.Jwt),
		middleware.NotRevoked(a.AuthService),
		middleware.RequireRoles("admin"),
	}

	fiberApp.Get("/prizes", append(append([]fiber.Handler{}, admin...), ListPrizes(a))...)
	fiberApp.Post("/prizes", append(append([]fiber.Handler{}, admin...), CreatePrize(a))...)
	fiberApp.Get("/prizes/:id", append(append([]fiber.Handler{}, admin...), GetPrize(a))...)
	fiberApp.Put("/prizes/:id", append(append([]fiber.Handler{}, admin...), UpdatePrize(a))...)
	fiberApp.Delete("/prizes/:id", append(append([]fiber.Handler{}, admin...), DeletePrize(a))...)
}

// ListPrizes returns the paginated prize list.
func ListPrizes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := common.ParseListOptions(c)
		prizes, total, err := a.PrizeService.List(c.UserContext(), opts)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't list prizes", err)
		}
		return common.ListJSON(c, "Prizes", prizes, common.NewListMeta(opts.Page, opts.Limit, total))
	}
}

// CreatePrize binds prizes to tickets. RANKED returns the single prize with
// 201; LAST returns the created-row count.
func CreatePrize(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreatePrizeInput](c)
		if err != nil {
			return nil
		}
		created, bulk, err := a.PrizeService.Create(
			c.UserContext(),
			domainprize.CreationMode(input.Mode),
			input.TicketNumber,
			input.PrizeDescription,
			input.PrizeAmount,
		)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't create prize", err)
		}
		if bulk != nil {
			return common.SuccessJSON(c, fiber.StatusCreated, "Prizes created", bulk)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, "Prize created", created)
	}
}

// GetPrize retrieves a prize by ID.
func GetPrize(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid prize ID", err.Error())
		}
		found, err := a.PrizeService.Get(c.UserContext(), id)
		if err != nil {
			return common.DomainErrorJSON(c, "No prize found", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Prize found", found)
	}
}

// UpdatePrize patches prize fields; re-pointing at an already awarded ticket
// is rejected.
func UpdatePrize(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid prize ID", err.Error())
		}
		input, err := common.BindAndValidate[UpdatePrizeInput](c)
		if err != nil {
			return nil
		}
		updated, err := a.PrizeService.Update(c.UserContext(), id, &dto.PrizeUpdate{
			PrizeDescription: input.PrizeDescription,
			PrizeAmount:      input.PrizeAmount,
			WinningTicketID:  input.WinningTicketID,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't update prize", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Prize updated", updated)
	}
}

// DeletePrize removes a prize.
func DeletePrize(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid prize ID", err.Error())
		}
		if err := a.PrizeService.Delete(c.UserContext(), id); err != nil {
			return common.DomainErrorJSON(c, "Couldn't delete prize", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
