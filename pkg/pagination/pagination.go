package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds limit/offset pagination inputs.
type Params struct {
	Limit  int
	Offset int
}

// Normalize enforces the configured default and maximum limits and clamps
// negative offsets.
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Query renders the normalized parameters as URL query values.
func (p Params) Query() url.Values {
	p = p.Normalize()
	values := url.Values{}
	values.Set("limit", strconv.Itoa(p.Limit))
	values.Set("offset", strconv.Itoa(p.Offset))
	return values
}
