package pagination

import (
	"fmt"

	"github.com/rshade/orgboard/internal/orgs"
)

// Meta describes where a page sits in the listing.
type Meta struct {
	PageSize    int    `json:"page_size"`
	TotalItems  int    `json:"total_items"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
	Previous    string `json:"previous,omitempty"`
	Next        string `json:"next,omitempty"`
}

// NewMeta builds the metadata of conn. The cursors are only set when the page on that
// side exists.
func NewMeta(conn *orgs.Connection) Meta {
	if conn == nil {
		return Meta{}
	}
	m := Meta{
		PageSize:    len(conn.Nodes),
		TotalItems:  conn.TotalCount,
		HasPrevious: conn.PageInfo.HasPreviousPage && conn.PageInfo.StartCursor != "",
		HasNext:     conn.PageInfo.HasNextPage && conn.PageInfo.EndCursor != "",
	}
	if m.HasPrevious {
		m.Previous = conn.PageInfo.StartCursor
	}
	if m.HasNext {
		m.Next = conn.PageInfo.EndCursor
	}
	return m
}

// Hints returns the flags that fetch the neighbouring pages, previous first.
func (m Meta) Hints() []string {
	var hints []string
	if m.HasPrevious {
		hints = append(hints, fmt.Sprintf("previous page: --%s %s", FlagBefore, m.Previous))
	}
	if m.HasNext {
		hints = append(hints, fmt.Sprintf("next page: --%s %s", FlagAfter, m.Next))
	}
	return hints
}
