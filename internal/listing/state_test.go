package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/orgs"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, orgs.DefaultSort(), s.Sort())
	assert.True(t, s.Filter().IsZero())
	assert.True(t, s.Directive().IsFirst())
	assert.Equal(t, SortPolicyReset, s.Policy())
}

func TestSortBy(t *testing.T) {
	tests := []struct {
		name   string
		policy SortPolicy
		start  orgs.SortSpec
		field  orgs.SortField
		want   orgs.SortSpec
	}{
		{
			name:   "same field toggles",
			policy: SortPolicyReset,
			start:  orgs.SortSpec{Field: orgs.SortByScore, Direction: orgs.SortDesc},
			field:  orgs.SortByScore,
			want:   orgs.SortSpec{Field: orgs.SortByScore, Direction: orgs.SortAsc},
		},
		{
			name:   "new field resets to desc",
			policy: SortPolicyReset,
			start:  orgs.SortSpec{Field: orgs.SortByScore, Direction: orgs.SortAsc},
			field:  orgs.SortByAUM,
			want:   orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc},
		},
		{
			name:   "new field keeps direction",
			policy: SortPolicyKeep,
			start:  orgs.SortSpec{Field: orgs.SortByScore, Direction: orgs.SortAsc},
			field:  orgs.SortByENS,
			want:   orgs.SortSpec{Field: orgs.SortByENS, Direction: orgs.SortAsc},
		},
		{
			name:   "keep policy still toggles same field",
			policy: SortPolicyKeep,
			start:  orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortAsc},
			field:  orgs.SortByAUM,
			want:   orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithPolicy(tt.policy), WithSort(tt.start),
				WithPage(orgs.PageDirective{Direction: orgs.PageAfter, Cursor: "c1"}))
			s.SortBy(tt.field)
			assert.Equal(t, tt.want, s.Sort())
			assert.True(t, s.Directive().IsFirst(), "sort change must reset pagination")
		})
	}
}

func TestSetFilter_ResetsPagination(t *testing.T) {
	s := New()
	s.Page(orgs.PageAfter, "c2")
	require.False(t, s.Directive().IsFirst())

	changed := s.SetFilter(orgs.Filter{Profile: true})
	assert.True(t, changed)
	assert.True(t, s.Directive().IsFirst())
	assert.NotContains(t, s.Variables().Map(), "after")
}

func TestSetFilter_EqualIsNoop(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(WithFilter(orgs.Filter{Kit: []string{"a", "b"}, CreatedAt: &orgs.DateRange{From: from}}))
	s.Page(orgs.PageBefore, "c3")

	changed := s.SetFilter(orgs.Filter{Kit: []string{"b", "a"}, CreatedAt: &orgs.DateRange{From: from}})
	assert.False(t, changed)
	assert.Equal(t, orgs.PageDirective{Direction: orgs.PageBefore, Cursor: "c3"}, s.Directive())
}

func TestPage(t *testing.T) {
	s := New()
	s.Page(orgs.PageAfter, "end")
	assert.Equal(t, "end", s.Variables().Map()["after"])

	s.Page(orgs.PageBefore, "start")
	m := s.Variables().Map()
	assert.Equal(t, "start", m["before"])
	assert.NotContains(t, m, "after")

	s.Page(orgs.PageAfter, "")
	assert.True(t, s.Directive().IsFirst())
}

func TestMultisigSortedByAUM(t *testing.T) {
	multisig, ok := orgs.KitByLabel("Multisig")
	require.True(t, ok)

	s := New()
	s.Page(orgs.PageAfter, "somewhere")
	s.SetFilter(orgs.Filter{Kit: multisig.Value})
	s.SortBy(orgs.SortByAUM)

	m := s.Variables().Map()
	assert.Equal(t, map[string]any{"aum": "DESC"}, m["sort"])
	assert.Equal(t, map[string]any{"kit": []string{
		"0x41bbaf498226b68415f1C78ED541c45A18fd7696",
		"0x87aa2980dde7d2D4e57191f16BB57cF80bf6E5A6",
	}}, m["filter"])
	assert.NotContains(t, m, "after")
	assert.NotContains(t, m, "before")
}

func TestParseSortPolicy(t *testing.T) {
	p, err := ParseSortPolicy("")
	require.NoError(t, err)
	assert.Equal(t, SortPolicyReset, p)

	p, err = ParseSortPolicy("KEEP")
	require.NoError(t, err)
	assert.Equal(t, SortPolicyKeep, p)

	_, err = ParseSortPolicy("flip")
	require.ErrorIs(t, err, ErrInvalidSortPolicy)
}
