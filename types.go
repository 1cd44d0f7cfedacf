package foundry

import (
	"fmt"
	"strconv"
)

// ListResponse wraps cursor-paginated results.
type ListResponse[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id"`
	LastID  string `json:"last_id"`
	HasMore bool   `json:"has_more"`
}

func (l ListResponse[T]) HasNext() bool {
	return l.HasMore && l.LastID != ""
}

// NextParams returns params for the page after this one.
func (l ListResponse[T]) NextParams(prev ListParams) ListParams {
	prev.After = l.LastID
	prev.Before = ""
	return prev
}

// ListParams controls list pagination.
type ListParams struct {
	Limit  int
	Order  string // "asc" or "desc"
	After  string
	Before string
}

func (p ListParams) query() (map[string]string, error) {
	q := map[string]string{}
	if p.Limit < 0 || p.Limit > 100 {
		return nil, fmt.Errorf("limit must be 0..100 (0 = server default), got %d", p.Limit)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	switch p.Order {
	case "":
	case "asc", "desc":
		q["order"] = p.Order
	default:
		return nil, fmt.Errorf("order must be asc or desc, got %q", p.Order)
	}
	if p.After != "" {
		q["after"] = p.After
	}
	if p.Before != "" {
		q["before"] = p.Before
	}
	return q, nil
}
