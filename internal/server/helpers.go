package server

import (
	"medlex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/skip query parameters.
type Pagination struct {
	Limit int
	Skip  int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and skip query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	return Pagination{Limit: limit, Skip: skip}
}

// callerIdentity returns the authenticated caller's ID and tier set by AuthRequired.
func callerIdentity(c *fiber.Ctx) (uint, models.Role) {
	return c.Locals("userID").(uint), c.Locals("role").(models.Role)
}
