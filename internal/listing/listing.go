// Package listing implements the shared pagination contract for collection
// endpoints: a fixed page size, a page number clamped into the valid range,
// and totals computed over the filtered row set.
package listing

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Limit is the fixed page size for every collection endpoint.
const Limit = 10

// Query carries the caller-controlled list parameters.
type Query struct {
	Page   int
	Search string
}

// ParseQuery extracts page/search from the request query string. Anything
// unparseable falls back to page 1; range clamping happens after counting.
func ParseQuery(values url.Values) Query {
	q := Query{Page: 1, Search: strings.TrimSpace(values.Get("search"))}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			q.Page = page
		}
	}
	return q
}

// SearchTerm normalizes a search filter for a LOWER(col) LIKE comparison.
func SearchTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// TotalPages reports how many pages the filtered set spans. An empty set
// still has one (empty) page.
func TotalPages(total int64) int {
	pages := int((total + Limit - 1) / Limit)
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page is one resolved page of a filtered collection.
type Page[T any] struct {
	Page       int
	TotalPages int
	Total      int64
	Limit      int
	Items      []T
}

// Run counts the rows matched by scope, clamps the requested page, and
// fetches that page. The scope must already carry the model, filters, and
// ordering; Run only adds LIMIT/OFFSET.
func Run[T any](ctx context.Context, scope *gorm.DB, q Query) (*Page[T], error) {
	var total int64
	if err := scope.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := TotalPages(total)
	page := ClampPage(q.Page, totalPages)

	items := []T{}
	err := scope.Session(&gorm.Session{}).WithContext(ctx).
		Offset((page - 1) * Limit).
		Limit(Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Limit:      Limit,
		Items:      items,
	}, nil
}
