// Package store provides the organisation data behind the reference GraphQL server.
//
// A Store answers one kind of question: the organisations matching a filter, in a
// given order, from an offset, plus totals over every match. Memory serves a fixture
// loaded from YAML, Cached memoises any Store with a TTL, and the arango subpackage
// queries an ArangoDB collection.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/orgboard/internal/orgs"
)

// ErrInvalidQuery is returned for a query with a negative offset or non-positive limit.
var ErrInvalidQuery = errors.New("store: invalid query")

// Query selects a window of the sorted, filtered organisations.
type Query struct {
	Sort   orgs.SortSpec
	Filter orgs.Filter
	Offset int
	Limit  int
}

// Validate checks the window bounds.
func (q Query) Validate() error {
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset %d is negative", ErrInvalidQuery, q.Offset)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit %d must be positive", ErrInvalidQuery, q.Limit)
	}
	return nil
}

// Key returns a string identifying the query, stable across equal queries.
func (q Query) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d|p=%t", q.Sort, q.Offset, q.Limit, q.Filter.Profile)
	if len(q.Filter.Kit) > 0 {
		kits := make([]string, len(q.Filter.Kit))
		for i, k := range q.Filter.Kit {
			kits[i] = strings.ToLower(k)
		}
		slices.Sort(kits)
		b.WriteString("|k=" + strings.Join(kits, ","))
	}
	if r := q.Filter.CreatedAt; r != nil && !r.IsZero() {
		fmt.Fprintf(&b, "|c=%d-%d", r.From.Unix(), r.To.Unix())
	}
	return b.String()
}

// Page is one window of organisations plus totals over every match.
type Page struct {
	Nodes         []orgs.Organisation
	TotalCount    int
	TotalAUM      float64
	TotalActivity float64
}

// Store lists organisations.
type Store interface {
	List(ctx context.Context, q Query) (*Page, error)
}
