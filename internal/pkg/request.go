package pkg

import (
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

var perPageDefault atomic.Int64

func init() {
	perPageDefault.Store(defaultPerPage)
}

// SetDefaultPerPage changes the per_page used when a request omits it.
// Values outside [1,100] are ignored.
func SetDefaultPerPage(n int) {
	if n >= minPerPage && n <= maxPerPage {
		perPageDefault.Store(int64(n))
	}
}

// DefaultPerPage returns the per_page applied when a request omits it.
func DefaultPerPage() int {
	return int(perPageDefault.Load())
}

// pageQuery is the query-string shape of every listing endpoint.
type pageQuery struct {
	Page    *int   `form:"page" json:"page" binding:"omitempty,min=1"`
	PerPage *int   `form:"per_page" json:"per_page" binding:"omitempty,min=1,max=100"`
	SortBy  string `form:"sort_by" json:"sort_by" binding:"max=50"`
	Order   string `form:"order" json:"order" binding:"max=4"`
	Search  string `form:"search" json:"search" binding:"max=100"`
	State   string `form:"state" json:"state" binding:"omitempty,oneof=active disabled"`
}

// ParsePageRequest binds and validates page, per_page, sort_by, order, and
// search. On failure it sends a validation response and returns false.
func ParsePageRequest(c *gin.Context) (domain.PageRequest, bool) {
	q, ok := ParseListQuery(c)
	return q.PageRequest, ok
}

// ParseListQuery binds the listing parameters plus state and the given
// resource-specific equality filters. Filter keys not listed are ignored.
// On failure it sends a validation response and returns false.
func ParseListQuery(c *gin.Context, filterKeys ...string) (domain.ListQuery, bool) {
	var pq pageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		validationErrorWithType(c, err, &pq)
		return domain.ListQuery{}, false
	}

	req := domain.PageRequest{
		Page:    defaultPage,
		PerPage: DefaultPerPage(),
		SortBy:  strings.TrimSpace(pq.SortBy),
		Order:   strings.ToLower(strings.TrimSpace(pq.Order)),
		Search:  strings.TrimSpace(pq.Search),
	}
	if pq.Page != nil {
		req.Page = *pq.Page
	}
	if pq.PerPage != nil {
		req.PerPage = *pq.PerPage
	}

	state := domain.StateActive
	if pq.State == string(domain.StateDisabled) {
		state = domain.StateDisabled
	}

	filters := make(map[string]string, len(filterKeys))
	for _, key := range filterKeys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			filters[key] = v
		}
	}

	return domain.ListQuery{PageRequest: req, State: state, Filters: filters}, true
}

// PathID reads the UUID path parameter name. On failure it sends a 400
// response and returns false.
func PathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if !ValidID(id) {
		Error(c, domain.Validationf(name+" must be a valid UUID"))
		return "", false
	}
	return strings.ToLower(id), true
}
