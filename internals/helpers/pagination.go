// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePaging membaca ?page= & ?limit= dan normalisasi.
// - defaultLimit: fallback kalau tidak ada/invalid
// - maxLimit: batasi limit maksimum (0 = tanpa batas)
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultLimit))))
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Paging{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func BuildPagination(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit)) // ceil
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
