// Package user exposes registration, profile, admin user CRUD, and the
// authenticated @me routes that drive purchases and claims.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/middleware"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/webapi/common"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Phone    string `json:"phone" validate:"required,min=9,max=15"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdateProfileInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=50"`
	Phone    *string `json:"phone" validate:"omitempty,min=9,max=15"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type AdminUpdateUserInput struct {
	Username *string       `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string       `json:"email" validate:"omitempty,email,max=50"`
	Phone    *string       `json:"phone" validate:"omitempty,min=9,max=15"`
	Password *string       `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string       `json:"role" validate:"omitempty,oneof=user admin"`
	Money    *money.Amount `json:"money" validate:"omitempty,min=0"`
	Status   *string       `json:"status" validate:"omitempty,oneof=pending approved"`
}

type PurchaseInput struct {
	TicketNumber string `json:"ticket_number" validate:"required,len=6"`
}

// Routes registers user endpoints. @me routes are declared before /:id so
// the literal segment wins.
func Routes(fiberApp *fiber.App, a *app.App) {
	protected := []fiber.Handler{
		middleware.JwtProtected(a.Config.Jwt),
		middleware.NotRevoked(a.AuthService),
	}
	admin := append(append([]fiber.Handler{}, protected...), middleware.RequireRoles("admin"))

	fiberApp.Post("/users", Register(a))
	fiberApp.Get("/users/check-unique", CheckUnique(a))
	fiberApp.Get("/users", append(admin, ListUsers(a))...)

	fiberApp.Get("/users/@me", append(protected, GetMe(a))...)
	fiberApp.Put("/users/@me", append(protected, UpdateMe(a))...)
	fiberApp.Get("/users/@me/tickets", append(protected, MyTickets(a))...)
	fiberApp.Get("/users/@me/tickets/:id/prize", append(protected, MyTicketPrize(a))...)
	fiberApp.Post("/users/@me/tickets/purchase", append(protected, Purchase(a))...)
	fiberApp.Post("/users/@me/prizes/:id/claim", append(protected, Claim(a))...)

	fiberApp.Get("/users/:id", append(admin, GetUser(a))...)
	fiberApp.Put("/users/:id", append(admin, UpdateUser(a))...)
	fiberApp.Delete("/users/:id", append(admin, DeleteUser(a))...)
}

// Register creates a pending account. Duplicate username, email or phone all
// get reported in one response.
func Register(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if err != nil {
			return nil
		}
		created, taken, err := a.UserService.Register(
			c.UserContext(),
			input.Username,
			input.Email,
			input.Phone,
			input.Password,
		)
		if err != nil {
			if taken.Any() {
				return common.ProblemDetailsJSON(
					c,
					fiber.StatusBadRequest,
					"Duplicate user fields",
					taken,
				)
			}
			return common.DomainErrorJSON(c, "Couldn't create user", err)
		}
		return common.SuccessJSON(c, fiber.StatusCreated, "User registered", created)
	}
}

// CheckUnique reports which of the given username/email/phone are taken.
// Backs the live validation on the registration form.
func CheckUnique(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		taken, err := a.UserService.CheckUniqueFields(
			c.UserContext(),
			c.Query("username"),
			c.Query("email"),
			c.Query("phone"),
		)
		if err != nil {
			return common.DomainErrorJSON(c, "Uniqueness check failed", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Uniqueness check", taken)
	}
}

// ListUsers returns the paginated user list.
func ListUsers(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := common.ParseListOptions(c)
		users, total, err := a.UserService.List(c.UserContext(), opts)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't list users", err)
		}
		return common.ListJSON(c, "Users", users, common.NewListMeta(opts.Page, opts.Limit, total))
	}
}

// GetMe returns the authenticated user's own profile.
func GetMe(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		me, err := a.UserService.Get(c.UserContext(), callerID)
		if err != nil {
			return common.DomainErrorJSON(c, "No user found", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Profile", me)
	}
}

// UpdateMe lets the authenticated user change contact details and password.
// Role, balance and status stay admin-only.
func UpdateMe(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if err != nil {
			return nil
		}
		updated, err := a.UserService.Update(c.UserContext(), callerID, &dto.UserUpdate{
			Email:    input.Email,
			Phone:    input.Phone,
			Password: input.Password,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't update profile", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Profile updated", updated)
	}
}

// MyTickets lists the caller's own tickets. Price and owner are omitted from
// the payload; q matches a substring of the ticket number.
func MyTickets(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		opts := common.ParseListOptions(c)
		filter := dto.TicketFilter{
			OwnerID:        &callerID,
			NumberContains: c.Query("q"),
		}
		tickets, total, err := a.TicketService.List(c.UserContext(), filter, opts)
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't list tickets", err)
		}
		owned := make([]dto.OwnedTicketRead, 0, len(tickets))
		for _, t := range tickets {
			owned = append(owned, dto.OwnedTicketRead{
				ID:           t.ID,
				TicketNumber: t.TicketNumber,
				DrawID:       t.DrawID,
				CreatedAt:    t.CreatedAt,
			})
		}
		return common.ListJSON(c, "Tickets", owned, common.NewListMeta(opts.Page, opts.Limit, total))
	}
}

// MyTicketPrize looks up the prize on one of the caller's tickets. Not
// owning the ticket is 403; owning a prizeless ticket is 404.
func MyTicketPrize(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		ticketID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid ticket ID", err.Error())
		}
		found, err := a.PrizeService.GetForOwnTicket(c.UserContext(), callerID, ticketID)
		if err != nil {
			return common.DomainErrorJSON(c, "No prize for ticket", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Prize", found)
	}
}

// Purchase runs the ticket ownership engine for the caller.
func Purchase(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[PurchaseInput](c)
		if err != nil {
			return nil
		}
		bought, err := a.TicketService.Purchase(c.UserContext(), callerID, input.TicketNumber)
		if err != nil {
			return common.DomainErrorJSON(c, "Purchase failed", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Ticket purchased", bought)
	}
}

// Claim runs the prize claim engine for the caller.
func Claim(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, ok := middleware.TokenUserID(c)
		if !ok {
			return common.DomainErrorJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		prizeID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid prize ID", err.Error())
		}
		claimed, err := a.PrizeService.Claim(c.UserContext(), callerID, prizeID)
		if err != nil {
			return common.DomainErrorJSON(c, "Claim failed", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "Prize claimed", claimed)
	}
}

// GetUser retrieves a user by ID.
func GetUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid user ID", err.Error())
		}
		found, err := a.UserService.Get(c.UserContext(), id)
		if err != nil {
			return common.DomainErrorJSON(c, "No user found", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "User found", found)
	}
}

// UpdateUser lets an admin patch any user field, including balance and role.
func UpdateUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid user ID", err.Error())
		}
		input, err := common.BindAndValidate[AdminUpdateUserInput](c)
		if err != nil {
			return nil
		}
		updated, err := a.UserService.Update(c.UserContext(), id, &dto.UserUpdate{
			Username: input.Username,
			Email:    input.Email,
			Phone:    input.Phone,
			Password: input.Password,
			Role:     input.Role,
			Money:    input.Money,
			Status:   input.Status,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Couldn't update user", err)
		}
		return common.SuccessJSON(c, fiber.StatusOK, "User updated", updated)
	}
}

// DeleteUser removes a user account.
func DeleteUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid user ID", err.Error())
		}
		if err := a.UserService.Delete(c.UserContext(), id); err != nil {
			return common.DomainErrorJSON(c, "Couldn't delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
