package gql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/orgs"
)

const pageJSON = `{"data":{"organisations":{
  "nodes":[{"id":"1","address":"0xabc","ens":"acme.aragonid.eth","kit":"0x41bbaf498226b68415f1C78ED541c45A18fd7696",
    "createdAt":"2020-03-05T10:00:00Z","aum":2500000000,"activity":12,"score":0.4321,
    "profile":{"name":"Acme","description":null,"icon":null,"links":[]}}],
  "pageInfo":{"startCursor":"s","endCursor":"e","hasPreviousPage":false,"hasNextPage":true},
  "totalCount":42,"totalAUM":9000000000,"totalActivity":120}}}`

func newTestClient(url string, opts ...Option) *Client {
	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)
	return NewClient(url, opts...)
}

func TestFetchOrganisations_SendsQueryAndVariables(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(pageJSON))
	}))
	defer srv.Close()

	multisig, _ := orgs.KitByLabel("Multisig")
	vars := orgs.Variables{
		Sort:   orgs.SortSpec{Field: orgs.SortByAUM, Direction: orgs.SortDesc},
		Filter: orgs.Filter{Kit: multisig.Value},
	}

	conn, err := newTestClient(srv.URL).FetchOrganisations(context.Background(), vars)
	require.NoError(t, err)

	assert.Equal(t, OrganisationsQuery, got.Query)
	assert.Equal(t, map[string]any{"aum": "DESC"}, got.Variables["sort"])
	assert.Equal(t, map[string]any{"kit": []any{
		"0x41bbaf498226b68415f1C78ED541c45A18fd7696",
		"0x87aa2980dde7d2D4e57191f16BB57cF80bf6E5A6",
	}}, got.Variables["filter"])
	assert.NotContains(t, got.Variables, "after")
	assert.NotContains(t, got.Variables, "before")

	require.Len(t, conn.Nodes, 1)
	node := conn.Nodes[0]
	assert.Equal(t, "acme.aragonid.eth", node.ENS)
	assert.InDelta(t, 2.5e9, node.AUM, 0)
	assert.Equal(t, time.Date(2020, 3, 5, 10, 0, 0, 0, time.UTC), node.CreatedAt.UTC())
	require.NotNil(t, node.Profile)
	assert.True(t, orgs.IsProfileEmpty(node.Profile))
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.Equal(t, "e", conn.PageInfo.EndCursor)
	assert.Equal(t, 42, conn.TotalCount)
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(pageJSON))
	}))
	defer srv.Close()

	conn, err := newTestClient(srv.URL, WithRetries(3)).FetchOrganisations(context.Background(), orgs.Variables{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, conn.Nodes, 1)
}

func TestDo_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "still down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, WithRetries(2)).FetchOrganisations(context.Background(), orgs.Variables{})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrganisations(context.Background(), orgs.Variables{})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.False(t, httpErr.Temporary())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_DoesNotRetryGraphQLErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":{"organisations":null},"errors":[{"message":"invalid cursor"},{"message":"try again"}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrganisations(context.Background(), orgs.Variables{})
	var gqlErr *Error
	require.ErrorAs(t, err, &gqlErr)
	assert.Len(t, gqlErr.Errors, 2)
	assert.Equal(t, "graphql: invalid cursor; try again", err.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL).FetchOrganisations(ctx, orgs.Variables{})
	require.Error(t, err)
}

func TestFetchOrganisations_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrganisations(context.Background(), orgs.Variables{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no organisations")
}
