package pkg

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/identi-digital/identi-modules/internal/domain"
)

const (
	minPerPage = 1
	maxPerPage = 100

	defaultTieBreak = "id"
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// likeEscaper escapes LIKE wildcards so a search term is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Scope is a reusable query predicate or modifier.
type Scope func(db *gorm.DB) *gorm.DB

// SearchField is a text column included in free-text search.
// Nullable columns are guarded so a NULL never matches.
type SearchField struct {
	Column   string
	Nullable bool
}

// OrderTerm is one ORDER BY term.
type OrderTerm struct {
	Column string
	Desc   bool
}

// ListSpec describes how one entity type is listed.
//
// SortFields and FilterFields map public parameter names to columns; names
// outside these maps are ignored. DefaultSort applies when sort_by is absent
// or unknown. TieBreak (default "id") is appended ascending so rows with equal
// sort keys keep a stable order across pages.
type ListSpec struct {
	SearchFields []SearchField
	SortFields   map[string]string
	FilterFields map[string]string
	DefaultSort  []OrderTerm
	TieBreak     string
	Preload      []string
}

// FindPage runs the paginated, searchable, sortable listing query for T.
//
// filters narrow the base set (typically Active() plus parent filters).
// Total is counted over filters and search, independent of pagination; a page
// past the end yields no items but keeps Total and TotalPages.
func FindPage[T any](ctx context.Context, db *gorm.DB, spec ListSpec, req domain.PageRequest, filters ...Scope) (*domain.PageResult[T], error) {
	req.PerPage = clampPerPage(req.PerPage)

	base := db.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		base = f(base)
	}
	base = Search(req.Search, spec.SearchFields)(base).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, MapError(err)
	}

	query := Paginate(req)(Sort(req, spec)(base))
	for _, rel := range spec.Preload {
		query = query.Preload(rel)
	}

	items := make([]T, 0, req.PerPage)
	if err := query.Find(&items).Error; err != nil {
		return nil, MapError(err)
	}

	return NewPage(items, total, req), nil
}

// FindAll returns up to limit rows of T matching filters and search, in the
// same order FindPage would list them. It backs exports.
func FindAll[T any](ctx context.Context, db *gorm.DB, spec ListSpec, req domain.PageRequest, limit int, filters ...Scope) ([]T, error) {
	query := db.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		query = f(query)
	}
	query = Sort(req, spec)(Search(req.Search, spec.SearchFields)(query))
	if limit > 0 {
		query = query.Limit(limit)
	}
	for _, rel := range spec.Preload {
		query = query.Preload(rel)
	}

	items := make([]T, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, MapError(err)
	}
	return items, nil
}

// Search returns a scope that ORs case-insensitive substring matches of term
// across fields. An empty term leaves the query untouched.
func Search(term string, fields []SearchField) Scope {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		lower := lowerFunc(db)
		conds := make([]string, 0, len(fields))
		args := make([]any, 0, len(fields))
		for _, f := range fields {
			if !validFieldName.MatchString(f.Column) {
				continue
			}
			cond := fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, lower, f.Column)
			if f.Nullable {
				cond = fmt.Sprintf("(%s IS NOT NULL AND %s)", f.Column, cond)
			}
			conds = append(conds, cond)
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Sort returns a scope that applies the resolved ORDER BY terms.
func Sort(req domain.PageRequest, spec ListSpec) Scope {
	terms := ResolveOrder(req, spec)
	return func(db *gorm.DB) *gorm.DB {
		for _, t := range terms {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: t.Column}, Desc: t.Desc})
		}
		return db
	}
}

// ResolveOrder maps sort_by through the allow-list and appends the tie-break.
// order is descending only when it equals "desc", ignoring case.
func ResolveOrder(req domain.PageRequest, spec ListSpec) []OrderTerm {
	var terms []OrderTerm
	if col, ok := spec.SortFields[strings.TrimSpace(req.SortBy)]; ok && validFieldName.MatchString(col) {
		terms = []OrderTerm{{Column: col, Desc: strings.EqualFold(strings.TrimSpace(req.Order), domain.OrderDesc)}}
	} else {
		terms = append([]OrderTerm(nil), spec.DefaultSort...)
	}

	tie := spec.TieBreak
	if tie == "" {
		tie = defaultTieBreak
	}
	for _, t := range terms {
		if t.Column == tie {
			return terms
		}
	}
	return append(terms, OrderTerm{Column: tie})
}

// Paginate returns a scope that applies LIMIT and OFFSET based on the page request.
// The page number is used as given; callers validate it.
func Paginate(req domain.PageRequest) Scope {
	perPage := clampPerPage(req.PerPage)
	return func(db *gorm.DB) *gorm.DB {
		offset := (req.Page - 1) * perPage
		return db.Offset(offset).Limit(perPage)
	}
}

// Equals returns a scope applying exact-match filters. Keys not present in
// allowed are silently ignored.
func Equals(filters map[string]string, allowed map[string]string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range filters {
			col, ok := allowed[key]
			if !ok || !validFieldName.MatchString(col) || value == "" {
				continue
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: col}, Value: value})
		}
		return db
	}
}

// NewPage builds a PageResult with computed TotalPages.
func NewPage[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	perPage := clampPerPage(req.PerPage)
	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   perPage,
		TotalPages: TotalPages(total, perPage),
	}
}

// TotalPages is ceil(total / perPage), and 0 when there is nothing to page.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func clampPerPage(n int) int {
	if n < minPerPage {
		return minPerPage
	}
	if n > maxPerPage {
		return maxPerPage
	}
	return n
}
