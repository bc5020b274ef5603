package orgs

import (
	"slices"
	"strings"
	"time"
)

// FilterKind is the input control a filter definition asks the filter UI to build.
type FilterKind string

const (
	// FilterKindList selects any number of items from a fixed list.
	FilterKindList FilterKind = "list"
	// FilterKindDateRange bounds a timestamp from either side.
	FilterKindDateRange FilterKind = "date-range"
	// FilterKindCheckbox is a single on/off switch.
	FilterKindCheckbox FilterKind = "checkbox"
)

// Filter binding names, as used in the GraphQL filter input.
const (
	FilterKit       = "kit"
	FilterCreatedAt = "createdAt"
	FilterProfile   = "profile"
)

// FilterDefinition describes one filter the filter UI offers.
type FilterDefinition struct {
	Name  string
	Label string
	Kind  FilterKind
	Items []FilterItem
}

// DefaultFilterDefinitions returns the filters of the organisation listing: template
// kits, creation date and profile presence.
func DefaultFilterDefinitions() []FilterDefinition {
	return []FilterDefinition{
		{Name: FilterKit, Label: "Templates", Kind: FilterKindList, Items: Kits()},
		{Name: FilterCreatedAt, Label: "Created", Kind: FilterKindDateRange},
		{Name: FilterProfile, Label: "Profile", Kind: FilterKindCheckbox},
	}
}

// DateRange bounds a timestamp. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t falls within the range, bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// Filter is the set of constraints applied to the listing. The zero value matches
// every organisation.
type Filter struct {
	// Kit holds template factory addresses; an organisation matches any of them.
	Kit []string
	// CreatedAt bounds the creation time; nil means unbounded.
	CreatedAt *DateRange
	// Profile restricts the listing to organisations that published a profile.
	Profile bool
}

// IsZero reports whether the filter applies no constraint.
func (f Filter) IsZero() bool {
	return len(f.Kit) == 0 && (f.CreatedAt == nil || f.CreatedAt.IsZero()) && !f.Profile
}

// Equal reports whether two filters constrain the listing identically. Kit order is
// not significant.
func (f Filter) Equal(o Filter) bool {
	if f.Profile != o.Profile {
		return false
	}
	if !sameKits(f.Kit, o.Kit) {
		return false
	}
	a, b := f.CreatedAt, o.CreatedAt
	aZero := a == nil || a.IsZero()
	bZero := b == nil || b.IsZero()
	if aZero || bZero {
		return aZero == bZero
	}
	return a.From.Equal(b.From) && a.To.Equal(b.To)
}

func sameKits(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// Variables returns the GraphQL filter binding, or nil when the filter is zero.
func (f Filter) Variables() map[string]any {
	if f.IsZero() {
		return nil
	}
	out := make(map[string]any)
	if len(f.Kit) > 0 {
		out[FilterKit] = slices.Clone(f.Kit)
	}
	if f.CreatedAt != nil && !f.CreatedAt.IsZero() {
		r := make(map[string]any)
		if !f.CreatedAt.From.IsZero() {
			r["from"] = f.CreatedAt.From.UTC().Format(time.RFC3339)
		}
		if !f.CreatedAt.To.IsZero() {
			r["to"] = f.CreatedAt.To.UTC().Format(time.RFC3339)
		}
		out[FilterCreatedAt] = r
	}
	if f.Profile {
		out[FilterProfile] = true
	}
	return out
}

// Matches reports whether an organisation satisfies every constraint of the filter.
func (f Filter) Matches(o Organisation) bool {
	if len(f.Kit) > 0 && !slices.ContainsFunc(f.Kit, func(k string) bool { return strings.EqualFold(k, o.Kit) }) {
		return false
	}
	if f.CreatedAt != nil && !f.CreatedAt.Contains(o.CreatedAt) {
		return false
	}
	if f.Profile && o.Profile == nil {
		return false
	}
	return true
}
