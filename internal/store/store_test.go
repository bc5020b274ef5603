package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/orgs"
)

func org(id string, aum float64, activity int64, kit string, profile bool) orgs.Organisation {
	o := orgs.Organisation{
		ID:        id,
		Address:   "0x" + id,
		ENS:       id + ".aragonid.eth",
		Kit:       kit,
		AUM:       aum,
		Activity:  activity,
		Score:     aum / 100,
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(activity)),
	}
	if profile {
		o.Profile = &orgs.Profile{Name: id}
	}
	return o
}

func sample() *Memory {
	return NewMemory([]orgs.Organisation{
		org("a", 30, 1, "0xK1", true),
		org("b", 10, 2, "0xK2", false),
		org("c", 20, 3, "0xk1", false),
		org("d", 20, 4, "0xK3", true),
		org("e", 50, 5, "0xK2", false),
	})
}

func ids(nodes []orgs.Organisation) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestMemory_SortAndWindow(t *testing.T) {
	m := sample()
	ctx := context.Background()

	page, err := m.List(ctx, Query{Sort: orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc}, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "a", "c"}, ids(page.Nodes), "ties broken by id")
	assert.Equal(t, 5, page.TotalCount)
	assert.InDelta(t, 130, page.TotalAUM, 0)
	assert.InDelta(t, 15, page.TotalActivity, 0)

	page, err = m.List(ctx, Query{Sort: orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc}, Offset: 3, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b"}, ids(page.Nodes))

	page, err = m.List(ctx, Query{Sort: orgs.SortSpec{Field: orgs.SortByENS, Direction: orgs.SortAsc}, Offset: 10, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Nodes)
	assert.Equal(t, 5, page.TotalCount)
}

func TestMemory_FilterTotals(t *testing.T) {
	page, err := sample().List(context.Background(), Query{
		Sort:   orgs.SortSpec{Field: orgs.SortByActivity, Direction: orgs.SortAsc},
		Filter: orgs.Filter{Kit: []string{"0xk1"}},
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(page.Nodes))
	assert.Equal(t, 2, page.TotalCount, "totals cover every match, not the page")
	assert.InDelta(t, 50, page.TotalAUM, 0)

	page, err = sample().List(context.Background(), Query{Sort: orgs.DefaultSort(), Filter: orgs.Filter{Profile: true}, Limit: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "d"}, ids(page.Nodes))
}

func TestMemory_InvalidQuery(t *testing.T) {
	_, err := sample().List(context.Background(), Query{Limit: 0})
	require.ErrorIs(t, err, ErrInvalidQuery)
	_, err = sample().List(context.Background(), Query{Offset: -1, Limit: 1})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sample().List(ctx, Query{Limit: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestQueryKey(t *testing.T) {
	a := Query{Sort: orgs.DefaultSort(), Filter: orgs.Filter{Kit: []string{"0xB", "0xa"}}, Limit: 10}
	b := Query{Sort: orgs.DefaultSort(), Filter: orgs.Filter{Kit: []string{"0xA", "0xb"}}, Limit: 10}
	assert.Equal(t, a.Key(), b.Key())

	b.Offset = 10
	assert.NotEqual(t, a.Key(), b.Key())

	c := a
	c.Filter.CreatedAt = &orgs.DateRange{From: time.Unix(100, 0)}
	assert.NotEqual(t, a.Key(), c.Key())
}

type countingStore struct {
	Store
	calls int
}

func (c *countingStore) List(ctx context.Context, q Query) (*Page, error) {
	c.calls++
	return c.Store.List(ctx, q)
}

func TestCached(t *testing.T) {
	inner := &countingStore{Store: sample()}
	c := NewCached(inner, time.Minute)
	q := Query{Sort: orgs.DefaultSort(), Limit: 2}

	first, err := c.List(context.Background(), q)
	require.NoError(t, err)
	second, err := c.List(context.Background(), q)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.calls)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	c.Flush()
	_, err = c.List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	_, err = c.List(context.Background(), Query{})
	require.ErrorIs(t, err, ErrInvalidQuery)
	_, err = c.List(context.Background(), Query{})
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, 4, inner.calls, "errors are not cached")
}

func TestDefaultFixture(t *testing.T) {
	m, err := DefaultFixture()
	require.NoError(t, err)
	require.Equal(t, 24, m.Len())

	multisig, ok := orgs.KitByLabel("Multisig")
	require.True(t, ok)

	page, err := m.List(context.Background(), Query{
		Sort:   orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc},
		Filter: orgs.Filter{Kit: multisig.Value},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, page.Nodes, 4)
	for i := 1; i < len(page.Nodes); i++ {
		assert.GreaterOrEqual(t, page.Nodes[i-1].AUM, page.Nodes[i].AUM)
	}
	for _, n := range page.Nodes {
		assert.Equal(t, "Multisig", orgs.KitLabel(n.Kit))
	}

	emptyProfiles := 0
	for _, o := range m.All() {
		if o.Profile != nil && orgs.IsProfileEmpty(o.Profile) {
			emptyProfiles++
		}
	}
	assert.Positive(t, emptyProfiles, "fixture carries empty profiles")
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "no version", yaml: "organisations: []\n", wantErr: "no version"},
		{name: "future version", yaml: "version: \"2.0.0\"\norganisations: []\n", wantErr: "not supported"},
		{name: "bad version", yaml: "version: \"one\"\n", wantErr: "fixture version"},
		{name: "unknown field", yaml: "version: \"1.0.0\"\nextra: 1\n", wantErr: "parsing fixture"},
		{
			name:    "missing address",
			yaml:    "version: \"1.2.0\"\norganisations:\n  - id: \"1\"\n",
			wantErr: "id and address are required",
		},
		{
			name:    "duplicate id",
			yaml:    "version: \"1.0.0\"\norganisations:\n  - {id: \"1\", address: \"0x1\"}\n  - {id: \"1\", address: \"0x2\"}\n",
			wantErr: "duplicate id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFixtureFile_Missing(t *testing.T) {
	_, err := LoadFixtureFile("/nonexistent/fixture.yaml")
	require.Error(t, err)
}
