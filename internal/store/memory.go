package store

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/rshade/orgboard/internal/orgs"
)

// Memory is a Store over an in-memory slice. It is safe for concurrent reads.
type Memory struct {
	items []orgs.Organisation
}

// NewMemory returns a Memory holding a copy of items.
func NewMemory(items []orgs.Organisation) *Memory {
	return &Memory{items: slices.Clone(items)}
}

// Len returns the number of organisations held.
func (m *Memory) Len() int {
	return len(m.items)
}

// All returns a copy of every organisation held.
func (m *Memory) All() []orgs.Organisation {
	return slices.Clone(m.items)
}

// List implements Store.
func (m *Memory) List(ctx context.Context, q Query) (*Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]orgs.Organisation, 0, len(m.items))
	page := &Page{}
	for _, o := range m.items {
		if !q.Filter.Matches(o) {
			continue
		}
		matched = append(matched, o)
		page.TotalAUM += o.AUM
		page.TotalActivity += float64(o.Activity)
	}
	page.TotalCount = len(matched)

	SortOrganisations(matched, q.Sort)

	if q.Offset < len(matched) {
		end := min(q.Offset+q.Limit, len(matched))
		page.Nodes = matched[q.Offset:end]
	}
	return page, nil
}

// SortOrganisations sorts items in place by spec. Ties are broken by ID ascending so
// that offsets stay stable between requests.
func SortOrganisations(items []orgs.Organisation, spec orgs.SortSpec) {
	slices.SortStableFunc(items, func(a, b orgs.Organisation) int {
		c := compareField(a, b, spec.Field)
		if spec.Direction == orgs.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareField(a, b orgs.Organisation, field orgs.SortField) int {
	switch field {
	case orgs.SortByENS:
		return cmp.Compare(strings.ToLower(a.ENS), strings.ToLower(b.ENS))
	case orgs.SortByAUM:
		return cmp.Compare(a.AUM, b.AUM)
	case orgs.SortByActivity:
		return cmp.Compare(a.Activity, b.Activity)
	case orgs.SortByScore:
		return cmp.Compare(a.Score, b.Score)
	case orgs.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return 0
	}
}
