package common

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lottohq/lottery/pkg/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParseListOptions reads page/limit/sort query parameters. sort accepts
// "column" or "-column" for descending.
func ParseListOptions(c *fiber.Ctx) dto.ListOptions {
	opts := dto.ListOptions{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", defaultPageSize),
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > maxPageSize {
		opts.Limit = defaultPageSize
	}
	if sort := c.Query("sort"); sort != "" {
		if strings.HasPrefix(sort, "-") {
			opts.SortBy = sort[1:]
			opts.SortDesc = true
		} else {
			opts.SortBy = sort
		}
	}
	return opts
}
