package helpers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationResult struct {
	Data        any   `json:"data"`
	Count       int64 `json:"count"`
	CurrentPage int   `json:"current_page"`
	NextPage    int   `json:"next_page"`
	PrevPage    int   `json:"prev_page"`
	LastPage    int   `json:"last_page"`
}

func Paginate(data any, total int64, page, limit int) PaginationResult {
	lastPage := 0
	if limit > 0 {
		lastPage = int(math.Ceil(float64(total) / float64(limit)))
	}

	nextPage := page + 1
	if nextPage > lastPage {
		nextPage = 0
	}

	prevPage := page - 1
	if prevPage < 1 {
		prevPage = 0
	}

	return PaginationResult{
		Data:        data,
		Count:       total,
		CurrentPage: page,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		LastPage:    lastPage,
	}
}

// PageParams reads page and limit from the query string, clamped to sane bounds.
func PageParams(c *fiber.Ctx) (int, int) {
	return ClampPage(c.Query("page"), c.Query("limit"))
}

func ClampPage(pageRaw, limitRaw string) (int, int) {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
