package request

import (
	"net/http"
	"strconv"
)

// Tenant listings are support-tooling sized: a modest default page with a
// hard cap so a bad limit cannot dump the whole table.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Pagination carries the cursor parameters of a list request.
type Pagination struct {
	Limit  int
	Cursor string
}

// ParsePagination reads limit and cursor from the query string. Absent,
// malformed, or non-positive limits fall back to the default.
func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()
	p := Pagination{Limit: DefaultLimit, Cursor: q.Get("cursor")}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
