// Package common holds the response envelope, RFC 9457 problem details, the
// request binding helper, and the domain-error to status-code mapping shared
// by every route group.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lottohq/lottery/pkg/domain"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// ListMeta carries pagination metadata alongside list payloads.
type ListMeta struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int64 `json:"total"`
}

// NewListMeta computes page count from the total and page size.
func NewListMeta(page, limit int, total int64) ListMeta {
	if page < 1 {
		page = 1
	}
	pageCount := 1
	if limit > 0 {
		pageCount = int((total + int64(limit) - 1) / int64(limit))
		if pageCount < 1 {
			pageCount = 1
		}
	}
	return ListMeta{Page: page, PageCount: pageCount, Total: total}
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ProblemDetailsJSON writes a response following RFC 9457 Problem Details.
func ProblemDetailsJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Conflicts lost
// to a concurrent writer surface the same codes their sequential
// counterparts do.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrPrizeNotFound),
		errors.Is(err, domain.ErrWinningTicketNotFound),
		errors.Is(err, domain.ErrDrawNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUserInvalid),
		errors.Is(err, domain.ErrDuplicateUserField),
		errors.Is(err, domain.ErrDuplicateTicketNumber),
		errors.Is(err, domain.ErrTicketAlreadySold),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrPrizeAlreadyExists),
		errors.Is(err, domain.ErrPrizeAlreadyClaimed),
		errors.Is(err, domain.ErrNoMatchingTickets),
		errors.Is(err, domain.ErrInvalidCreationMode):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotPrizeOwner),
		errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainErrorJSON writes the problem-details response for a domain error.
func DomainErrorJSON(c *fiber.Ctx, title string, err error) error {
	return ProblemDetailsJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// BindAndValidate parses the request body into T and validates it with
// go-playground/validator. On failure the error response is already written;
// callers just return nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}

// SuccessJSON writes the standard success envelope.
func SuccessJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ListJSON writes a list payload with pagination metadata.
func ListJSON(c *fiber.Ctx, message string, data any, meta ListMeta) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}
