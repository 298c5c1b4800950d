package handlers

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moxuanli/frs/backend/internal/models"
)

// getUserIDFromContext returns the authenticated user's id, or 0 when the
// request is anonymous.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// pageParams parses page/limit query parameters with the shared defaults.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

// paginationMeta is the pagination envelope shared by list responses.
type paginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

func newPaginationMeta(page, limit int, totalItems int64) paginationMeta {
	return paginationMeta{
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalItems) / float64(limit))),
		TotalItems: totalItems,
	}
}
