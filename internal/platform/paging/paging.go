package paging

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params es la paginación pedida por el caller (1-based).
type Params struct {
	Page     int
	PageSize int
}

// Normalize aplica defaults y el tope de MaxPageSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

func (p Params) Limit() int {
	return p.Normalize().PageSize
}

// Window recorta un slice ya filtrado y ordenado (repos in-memory).
func Window[T any](items []T, p Params) []T {
	off := p.Offset()
	if off >= len(items) {
		return []T{}
	}
	end := off + p.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

// Result es el sobre de respuesta de los listados.
type Result[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func NewResult[T any](items []T, total int, p Params) Result[T] {
	n := p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Total: total, Page: n.Page, PageSize: n.PageSize}
}

// FromRequest lee ?page=&page_size=. Valores inválidos caen al default.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(q.Get("page_size")))
	return Params{Page: page, PageSize: size}.Normalize()
}

// SortFromRequest lee ?sort=campo&order=asc|desc.
func SortFromRequest(r *http.Request) (field string, desc bool) {
	q := r.URL.Query()
	field = strings.ToLower(strings.TrimSpace(q.Get("sort")))
	desc = strings.EqualFold(strings.TrimSpace(q.Get("order")), "desc")
	return field, desc
}
