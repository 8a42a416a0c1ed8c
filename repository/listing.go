// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"fmt"
	"strings"

	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// InClause restricts one column to a set of accepted values.
type InClause struct {
	Field  string
	Values []string
}

// ListQuery is an immutable description of a windowed listing request:
// a substring search term, named value-set filters, a sort choice and a
// page window. Flows assemble it from validated input; repositories map
// it onto SQL through their ListSpec. The zero value lists everything
// with the entity's default ordering and no window.
type ListQuery struct {
	search  string
	in      []InClause
	sortBy  string
	sortAsc bool
	page    int // 1-based, 0 means no pagination
	all     bool
}

// WithSearch returns a copy carrying the substring search term.
func (q ListQuery) WithSearch(term string) ListQuery {
	q.search = strings.TrimSpace(term)
	return q
}

// WithIn returns a copy carrying one more value-set filter. Empty value
// sets are dropped, an empty set never means "match nothing".
func (q ListQuery) WithIn(field string, values []string) ListQuery {
	if len(values) == 0 {
		return q
	}
	in := make([]InClause, len(q.in), len(q.in)+1)
	copy(in, q.in)
	q.in = append(in, InClause{Field: field, Values: values})
	return q
}

// WithSort returns a copy carrying the requested sort field and direction.
func (q ListQuery) WithSort(field string, ascending bool) ListQuery {
	q.sortBy = field
	q.sortAsc = ascending
	return q
}

// WithPage returns a copy windowed to the given 1-based page. Pages
// below 1 leave the query unwindowed.
func (q ListQuery) WithPage(page int) ListQuery {
	if page < 1 {
		page = 0
	}
	q.page = page
	return q
}

// WithAll returns a copy that disables the page window entirely.
func (q ListQuery) WithAll() ListQuery {
	q.all = true
	return q
}

// Limit returns the page size, or 0 when the query is unwindowed.
func (q ListQuery) Limit() int {
	if q.all || q.page < 1 {
		return 0
	}
	return utils.PageSize
}

// Offset returns the number of rows to skip for the current page.
func (q ListQuery) Offset() int {
	if q.all || q.page < 1 {
		return 0
	}
	return (q.page - 1) * utils.PageSize
}

// ListSpec declares, per entity, which columns a ListQuery may touch.
// Search columns are OR-matched with ILIKE, filter and sort fields are
// resolved through whitelist maps keyed by their public API names.
// Anything not whitelisted is ignored, never an error.
type ListSpec struct {
	SearchColumns []string
	FilterColumns map[string]string
	SortColumns   map[string]string
	DefaultOrder  string // applied when no valid sort was requested
	Joins         []string
}

// ApplyPredicates adds the search and filter conditions of q to the query.
// The same predicates feed both the page select and the count, so the
// reported total always matches the filtered set.
func (s ListSpec) ApplyPredicates(db *gorm.DB, q ListQuery) *gorm.DB {
	for _, join := range s.Joins {
		db = db.Joins(join)
	}

	if q.search != "" && len(s.SearchColumns) > 0 {
		var conds []string
		var args []any
		for _, col := range s.SearchColumns {
			conds = append(conds, fmt.Sprintf("%s ILIKE ?", col))
			args = append(args, "%"+q.search+"%")
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}

	for _, in := range q.in {
		col, ok := s.FilterColumns[in.Field]
		if !ok {
			continue
		}
		db = db.Where(fmt.Sprintf("%s IN ?", col), in.Values)
	}

	return db
}

// ApplyOrder adds the whitelisted sort of q, falling back to the
// entity default (descending primary key) for unknown fields.
func (s ListSpec) ApplyOrder(db *gorm.DB, q ListQuery) *gorm.DB {
	if col, ok := s.SortColumns[q.sortBy]; ok {
		dir := "DESC"
		if q.sortAsc {
			dir = "ASC"
		}
		return db.Order(fmt.Sprintf("%s %s", col, dir))
	}
	if s.DefaultOrder != "" {
		return db.Order(s.DefaultOrder)
	}
	return db
}

// ApplyWindow adds the limit and offset of the page window, if any.
func (s ListSpec) ApplyWindow(db *gorm.DB, q ListQuery) *gorm.DB {
	if limit := q.Limit(); limit > 0 {
		db = db.Limit(limit).Offset(q.Offset())
	}
	return db
}
