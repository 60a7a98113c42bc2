package pagination

import (
	"net/http"
	"strconv"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Params holds offset pagination parameters (limit/skip) extracted from
// query strings.
type Params struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// DefaultParams returns the first page of size limit.
func DefaultParams(limit int) Params {
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Limit: limit}
}

// FromRequest reads ?limit= and ?skip=. Invalid or out-of-range values fall
// back to the defaults.
func FromRequest(r *http.Request, defaultLimit int) Params {
	p := DefaultParams(defaultLimit)
	q := r.URL.Query()

	if limit := q.Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxLimit {
			p.Limit = v
		}
	}

	if skip := q.Get("skip"); skip != "" {
		if v, err := strconv.Atoi(skip); err == nil && v >= 0 {
			p.Skip = v
		}
	}

	return p
}

// HasMore reports whether another page may follow one of pageLen items
// fetched at p, given total items upstream.
func (p Params) HasMore(pageLen, total int) bool {
	return pageLen == p.Limit && p.Skip+pageLen < total
}

// Next returns the params of the page that follows one of pageLen items.
func (p Params) Next(pageLen int) Params {
	return Params{Limit: p.Limit, Skip: p.Skip + pageLen}
}
