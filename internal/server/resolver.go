package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/rshade/orgboard/internal/logging"
	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/store"
)

// dateOnly is the short form accepted for date range bounds.
const dateOnly = "2006-01-02"

// Resolver answers the organisations query from a store.
type Resolver struct {
	store    store.Store
	pageSize int
	logger   zerolog.Logger
}

// NewResolver returns a resolver serving pages of pageSize from s.
func NewResolver(s store.Store, pageSize int, logger zerolog.Logger) *Resolver {
	return &Resolver{store: s, pageSize: pageSize, logger: logger}
}

// ResolveOrganisations resolves the organisations field.
func (r *Resolver) ResolveOrganisations(p graphql.ResolveParams) (interface{}, error) {
	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.FromContext(ctx)

	sortSpec, err := parseSortArg(p.Args["sort"])
	if err != nil {
		return nil, err
	}
	filter, err := parseFilterArg(p.Args["filter"])
	if err != nil {
		return nil, err
	}
	before, _ := p.Args["before"].(string)
	after, _ := p.Args["after"].(string)
	offset, limit, err := window(before, after, r.pageSize)
	if err != nil {
		return nil, err
	}

	// A before cursor at the first node selects nothing; the totals still apply.
	page, err := r.store.List(ctx, store.Query{Sort: sortSpec, Filter: filter, Offset: offset, Limit: max(limit, 1)})
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("listing organisations failed")
		return nil, errors.New("failed to list organisations")
	}
	if limit == 0 {
		page = &store.Page{TotalCount: page.TotalCount, TotalAUM: page.TotalAUM, TotalActivity: page.TotalActivity}
	}

	nodes := make([]interface{}, len(page.Nodes))
	for i, o := range page.Nodes {
		nodes[i] = organisationMap(o)
	}
	conn := map[string]interface{}{
		"nodes":         nodes,
		"totalCount":    page.TotalCount,
		"totalAUM":      page.TotalAUM,
		"totalActivity": page.TotalActivity,
	}

	pageInfo := map[string]interface{}{
		"startCursor":     "",
		"endCursor":       "",
		"hasPreviousPage": offset > 0 && page.TotalCount > 0,
		"hasNextPage":     offset+len(page.Nodes) < page.TotalCount,
	}
	if len(page.Nodes) > 0 {
		pageInfo["startCursor"] = EncodeCursor(offset)
		pageInfo["endCursor"] = EncodeCursor(offset + len(page.Nodes) - 1)
	}
	conn["pageInfo"] = pageInfo

	r.logger.Debug().Ctx(ctx).
		Str("sort", sortSpec.String()).
		Int("offset", offset).
		Int("nodes", len(nodes)).
		Int("total", page.TotalCount).
		Msg("resolved organisations")
	return conn, nil
}

func organisationMap(o orgs.Organisation) map[string]interface{} {
	m := map[string]interface{}{
		"id":        o.ID,
		"address":   o.Address,
		"ens":       nullable(o.ENS),
		"kit":       nullable(o.Kit),
		"createdAt": nil,
		"aum":       o.AUM,
		"activity":  o.Activity,
		"score":     o.Score,
		"profile":   nil,
	}
	if !o.CreatedAt.IsZero() {
		m["createdAt"] = o.CreatedAt.UTC().Format(time.RFC3339)
	}
	if p := o.Profile; p != nil {
		links := p.Links
		if links == nil {
			links = []string{}
		}
		m["profile"] = map[string]interface{}{
			"name":        nullable(p.Name),
			"description": nullable(p.Description),
			"icon":        nullable(p.Icon),
			"links":       links,
		}
	}
	return m
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func parseSortArg(arg interface{}) (orgs.SortSpec, error) {
	m, ok := arg.(map[string]interface{})
	if !ok || len(m) == 0 {
		return orgs.DefaultSort(), nil
	}
	if len(m) > 1 {
		return orgs.SortSpec{}, errors.New("sort accepts exactly one field")
	}
	for key, value := range m {
		field, err := orgs.ParseSortField(key)
		if err != nil {
			return orgs.SortSpec{}, err
		}
		dirName, _ := value.(string)
		dir, err := orgs.ParseSortDirection(dirName)
		if err != nil {
			return orgs.SortSpec{}, err
		}
		return orgs.SortSpec{Field: field, Direction: dir}, nil
	}
	return orgs.DefaultSort(), nil
}

func parseFilterArg(arg interface{}) (orgs.Filter, error) {
	var f orgs.Filter
	m, ok := arg.(map[string]interface{})
	if !ok {
		return f, nil
	}

	if kits, ok := m[orgs.FilterKit].([]interface{}); ok {
		for _, k := range kits {
			if s, ok := k.(string); ok && s != "" {
				f.Kit = append(f.Kit, s)
			}
		}
	}
	if profile, ok := m[orgs.FilterProfile].(bool); ok {
		f.Profile = profile
	}
	if rng, ok := m[orgs.FilterCreatedAt].(map[string]interface{}); ok {
		var r orgs.DateRange
		var err error
		if s, ok := rng["from"].(string); ok && s != "" {
			if r.From, err = parseBound(s, false); err != nil {
				return f, fmt.Errorf("createdAt.from: %w", err)
			}
		}
		if s, ok := rng["to"].(string); ok && s != "" {
			if r.To, err = parseBound(s, true); err != nil {
				return f, fmt.Errorf("createdAt.to: %w", err)
			}
		}
		if !r.IsZero() {
			f.CreatedAt = &r
		}
	}
	return f, nil
}

// parseBound parses an RFC 3339 timestamp or a bare date. A bare upper bound covers
// the whole day.
func parseBound(s string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or %s, got %q", dateOnly, s)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
