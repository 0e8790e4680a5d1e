// Package ticket exposes the admin ticket inventory endpoints.
package ticket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/middleware"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/webapi/common"
)

type CreateTicketInput struct {
	TicketNumber string       `json:"ticket_number" validate:"required,len=6,numeric"`
	Price        money.Amount `json:"price" validate:"required,gt=0"`
	DrawID       *uuid.UUID   `json:"draw_id"`
}

type UpdateTicketInput struct {
	TicketNumber *string       `json:"ticket_number" validate:"omitempty,len=6,numeric"`
	Price        *money.Amount `json:"price" validate:"omitempty,gt=0"`
	DrawID       *uuid.UUID    `json:"draw_id"`
}

// Routes registers ticket endpoints. Listing is open to authenticated users
// so they can browse the inventory; mutations are admin-only.
func Routes(fiberApp *fiber.App, a *app.App) {
	protected := []fiber.Handler{
		middleware.JwtProtected(a.Config.Jwt),
		middleware.NotRevoked(a.AuthService),
	}
	admin := append(append([]fiber.Handler{}, protected...), middleware.RequireRoles("admin"))

	fiberApp.Get("/tickets", append(protected, ListTickets(a))...)
	fiberApp.Post("/tickets", append(admin, CreateTicket(a))...)
	fiberApp.Get("/tickets/:id", append(protected, GetTicket(a))...)
	fiberApp.Put("/tickets/:id", append(admin, UpdateTicket(a))...)
	fiberApp.Delete("/tickets/:id", append(admin, DeleteTicket(a))...)
}

// ListTickets returns the paginated inventory. q matches a substring of the
// ticket number.
func ListTickets(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := common.ParseListOptions(c)
		filter := dto.TicketFilter{NumberContains: c.Query("q")}
		tickets, total, err := a.TicketService.List(c.UserContext(), filter, opts)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't list tickets", err)
		}
		return common.ListJSON(c, "Tickets", tickets, common.NewListMeta(opts.Page, opts.Limit, total))
	}
}

// CreateTicket registers a new unsold ticket.
func CreateTicket(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTicketInput](c)
		if err != nil {
			return nil
		}
		created, err := a.TicketService.Create(
			c.UserContext(),
			input.TicketNumber,
			input.Price,
			input.DrawID,
		)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't create ticket", err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, "Ticket created", created)
	}
}

// GetTicket retrieves a ticket by ID.
func GetTicket(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid ticket ID", err.Error())
		}
		found, err := a.TicketService.Get(c.UserContext(), id)
		if err != nil {
			return common.DomainErrorJSON(c, "No ticket found", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Ticket found", found)
	}
}

// UpdateTicket patches ticket fields; ownership is not editable here.
func UpdateTicket(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid ticket ID", err.Error())
		}
		input, err := common.BindAndValidate[UpdateTicketInput](c)
		if err != nil {
			return nil
		}
		updated, err := a.TicketService.Update(c.UserContext(), id, &dto.TicketUpdate{
			TicketNumber: input.TicketNumber,
			Price:        input.Price,
			DrawID:       input.DrawID,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't update ticket", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Ticket updated", updated)
	}
}

// DeleteTicket removes a ticket.
func DeleteTicket(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid ticket ID", err.Error())
		}
		if err := a.TicketService.Delete(c.UserContext(), id); err != nil {
			return common.DomainErrorJSON(c, "Couldn't delete ticket", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
