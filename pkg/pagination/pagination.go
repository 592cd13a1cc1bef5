package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Limits bounds the page size a client may ask for
type Limits struct {
	Default int
	Max     int
}

var DefaultLimits = Limits{Default: DefaultLimit, Max: MaxLimit}

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Meta is returned next to a page of results
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Parse extracts and validates page/limit from query parameters
func Parse(c *gin.Context, l Limits) Params {
	if l.Default < MinLimit {
		l.Default = DefaultLimit
	}
	if l.Max < l.Default {
		l.Max = l.Default
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(l.Default)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = l.Default
	}
	if limit > l.Max {
		limit = l.Max
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func (p Params) Meta(total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
