package model

import "strings"

// Ограничения пагинации.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams — параметры списочной выборки: пагинация, поиск, сортировка.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// Normalize приводит параметры к допустимым значениям:
// page >= 1, page_size в [1,100], order_by только из allow-list (иначе created_at),
// order_dir только asc|desc (иначе desc). Некорректные значения исправляются
// молча, без ошибки.
func (p ListParams) Normalize(allowedOrder []string) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	ok := false
	for _, col := range allowedOrder {
		if p.OrderBy == col {
			ok = true
			break
		}
	}
	if !ok {
		p.OrderBy = "created_at"
	}

	switch strings.ToLower(p.OrderDir) {
	case "asc":
		p.OrderDir = "asc"
	case "desc":
		p.OrderDir = "desc"
	default:
		p.OrderDir = "desc"
	}

	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset возвращает смещение для SQL LIMIT/OFFSET.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination — метаданные пагинации для ответа списка.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination собирает метаданные по нормализованным параметрам и общему числу строк.
func NewPagination(p ListParams, total int64) Pagination {
	totalPages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
