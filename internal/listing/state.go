// Package listing holds the sort, filter and pagination state of the organisation
// listing and derives the query variables from it.
//
// The state enforces the reset rule: committing a sort or filter change clears the
// pagination directive, so the next query always starts from the first page.
package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/orgboard/internal/orgs"
)

// SortPolicy decides the direction used when a different sort field is selected.
type SortPolicy string

const (
	// SortPolicyReset starts every newly selected field in descending order.
	SortPolicyReset SortPolicy = "reset"
	// SortPolicyKeep carries the current direction over to the newly selected field.
	SortPolicyKeep SortPolicy = "keep"
)

// ErrInvalidSortPolicy is returned for an unknown sort policy name.
var ErrInvalidSortPolicy = errors.New("sort policy must be 'reset' or 'keep'")

// ParseSortPolicy parses a policy name. The empty string selects SortPolicyReset.
func ParseSortPolicy(s string) (SortPolicy, error) {
	switch SortPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortPolicyReset:
		return SortPolicyReset, nil
	case SortPolicyKeep:
		return SortPolicyKeep, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortPolicy, s)
	}
}

// State is the listing state machine. It is not safe for concurrent use; the owning
// model only mutates it from its update loop.
type State struct {
	sort   orgs.SortSpec
	filter orgs.Filter
	page   orgs.PageDirective
	policy SortPolicy
}

// Option configures a new State.
type Option func(*State)

// WithSort sets the initial sort.
func WithSort(spec orgs.SortSpec) Option {
	return func(s *State) { s.sort = spec }
}

// WithFilter sets the initial filter.
func WithFilter(f orgs.Filter) Option {
	return func(s *State) { s.filter = f }
}

// WithPage sets the initial page directive, e.g. a cursor given on the command line.
func WithPage(p orgs.PageDirective) Option {
	return func(s *State) { s.page = p }
}

// WithPolicy sets the sort policy.
func WithPolicy(p SortPolicy) Option {
	return func(s *State) { s.policy = p }
}

// New returns a State on the first page, sorted by the default sort with no filter.
func New(opts ...Option) *State {
	s := &State{
		sort:   orgs.DefaultSort(),
		policy: SortPolicyReset,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SortBy selects field as the active sort. Reselecting the active field flips the
// direction; a new field takes its direction from the sort policy. Pagination is reset.
func (s *State) SortBy(field orgs.SortField) {
	switch {
	case field == s.sort.Field:
		s.sort.Direction = s.sort.Direction.Toggle()
	case s.policy == SortPolicyKeep:
		s.sort.Field = field
	default:
		s.sort = orgs.SortSpec{Field: field, Direction: orgs.SortDesc}
	}
	s.page = orgs.FirstPage()
}

// SetFilter replaces the filter. It reports whether the filter changed; only a change
// resets pagination.
func (s *State) SetFilter(f orgs.Filter) bool {
	if s.filter.Equal(f) {
		return false
	}
	s.filter = f
	s.page = orgs.FirstPage()
	return true
}

// Page moves to the page on the given side of cursor. An empty cursor selects the
// first page.
func (s *State) Page(direction orgs.PageDirection, cursor string) {
	if cursor == "" {
		s.page = orgs.FirstPage()
		return
	}
	s.page = orgs.PageDirective{Direction: direction, Cursor: cursor}
}

// Sort returns the active sort.
func (s *State) Sort() orgs.SortSpec {
	return s.sort
}

// Filter returns the active filter.
func (s *State) Filter() orgs.Filter {
	return s.filter
}

// Directive returns the active page directive.
func (s *State) Directive() orgs.PageDirective {
	return s.page
}

// Policy returns the sort policy.
func (s *State) Policy() SortPolicy {
	return s.policy
}

// Variables returns the query variables for the current state.
func (s *State) Variables() orgs.Variables {
	return orgs.Variables{Sort: s.sort, Filter: s.filter, Page: s.page}
}
