package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/orgs"
)

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter(orgsParams{
		kits:        []string{"company", " 0xabc ", ""},
		from:        "2020-01-01",
		to:          "2020-12-31",
		withProfile: true,
	})
	require.NoError(t, err)

	company, _ := orgs.KitByLabel("Company")
	assert.Equal(t, append(append([]string{}, company.Value...), "0xabc"), f.Kit)
	require.NotNil(t, f.CreatedAt)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), f.CreatedAt.From)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), f.CreatedAt.To)
	assert.True(t, f.Profile)

	empty, err := buildFilter(orgsParams{})
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
	assert.Nil(t, empty.CreatedAt)
}

func TestRenderOrgsTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderOrgsTable(&buf, orgs.DefaultSort(), &orgs.Connection{}, time.Now()))
	assert.Equal(t, "No organisations found.\n", buf.String())
}

func TestRenderOrgsTable_Rows(t *testing.T) {
	multisig, _ := orgs.KitByLabel("Multisig")
	conn := &orgs.Connection{
		Nodes: []orgs.Organisation{{
			ID:        "org:1",
			Address:   "0x1234567890abcdef1234567890abcdef12345678",
			ENS:       "acme.aragonid.eth",
			Kit:       multisig.Value[0],
			CreatedAt: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
			AUM:       2.5e9,
			Activity:  42,
			Score:     0.5,
		}},
		PageInfo:   orgs.PageInfo{StartCursor: "c0", EndCursor: "c0", HasPreviousPage: true},
		TotalCount: 11,
	}

	var buf bytes.Buffer
	require.NoError(t, renderOrgsTable(&buf, orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortAsc}, conn, time.Now()))
	out := buf.String()

	assert.Contains(t, out, "acme.aragonid.eth")
	assert.Contains(t, out, "0x1234…5678")
	assert.Contains(t, out, "Multisig")
	assert.Contains(t, out, "11 organisations")
	assert.Contains(t, out, "previous page: --before c0")
	assert.False(t, strings.Contains(out, "next page:"))
}
