package common

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
)

func TestNewListMeta(t *testing.T) {
	tests := []struct {
		page, limit   int
		total         int64
		wantPage      int
		wantPageCount int
	}{
		{page: 1, limit: 20, total: 45, wantPage: 1, wantPageCount: 3},
		{page: 3, limit: 20, total: 60, wantPage: 3, wantPageCount: 3},
		{page: 0, limit: 20, total: 0, wantPage: 1, wantPageCount: 1},
		{page: 1, limit: 0, total: 10, wantPage: 1, wantPageCount: 1},
	}
	for _, tt := range tests {
		meta := NewListMeta(tt.page, tt.limit, tt.total)
		assert.Equal(t, tt.wantPage, meta.Page)
		assert.Equal(t, tt.wantPageCount, meta.PageCount)
		assert.Equal(t, tt.total, meta.Total)
	}
}

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrTicketNotFound, fiber.StatusNotFound},
		{domain.ErrPrizeNotFound, fiber.StatusNotFound},
		{domain.ErrWinningTicketNotFound, fiber.StatusNotFound},
		{domain.ErrUserInvalid, fiber.StatusBadRequest},
		{domain.ErrInsufficientFunds, fiber.StatusBadRequest},
		{domain.ErrTicketAlreadySold, fiber.StatusBadRequest},
		{domain.ErrPrizeAlreadyClaimed, fiber.StatusBadRequest},
		{domain.ErrNotPrizeOwner, fiber.StatusForbidden},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrInsufficientFunds), fiber.StatusBadRequest},
		{assert.AnError, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorToStatusCode(tt.err), "error %v", tt.err)
	}
}

func TestParseListOptions(t *testing.T) {
	app := fiber.New()
	var got dto.ListOptions
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseListOptions(c)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		target string
		want   dto.ListOptions
	}{
		{"/", dto.ListOptions{Page: 1, Limit: defaultPageSize}},
		{"/?page=3&limit=50", dto.ListOptions{Page: 3, Limit: 50}},
		{"/?page=-1&limit=9999", dto.ListOptions{Page: 1, Limit: defaultPageSize}},
		{"/?sort=created_at", dto.ListOptions{Page: 1, Limit: defaultPageSize, SortBy: "created_at"}},
		{"/?sort=-price", dto.ListOptions{Page: 1, Limit: defaultPageSize, SortBy: "price", SortDesc: true}},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.target, nil), -1)
		require.NoError(t, err)
		resp.Body.Close() //nolint: errcheck
		assert.Equal(t, tt.want, got, "target %s", tt.target)
	}
}
