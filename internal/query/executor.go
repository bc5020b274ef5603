// Package query runs organisation queries on behalf of the listing page.
//
// The executor follows a begin/fetch/apply cycle. Begin allocates a request sequence
// number and is called from the owner's update loop. Fetch runs the request and is
// safe to call from any goroutine. Apply commits a result back on the update loop and
// drops any result that is not for the most recent request, so out-of-order responses
// never overwrite newer data.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/orgboard/internal/orgs"
)

// DefaultTimeout bounds a single fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrNoFetcher is returned when an executor has nothing to fetch from.
var ErrNoFetcher = errors.New("query: no fetcher configured")

// Fetcher retrieves one page of organisations plus totals.
type Fetcher interface {
	FetchOrganisations(ctx context.Context, vars orgs.Variables) (*orgs.Connection, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, vars orgs.Variables) (*orgs.Connection, error)

// FetchOrganisations calls f.
func (f FetcherFunc) FetchOrganisations(ctx context.Context, vars orgs.Variables) (*orgs.Connection, error) {
	return f(ctx, vars)
}

// Status is the tri-state outcome of the latest request.
type Status int

const (
	// StatusIdle means nothing has been requested yet.
	StatusIdle Status = iota
	// StatusLoading means the latest request has not completed.
	StatusLoading
	// StatusError means the latest request failed.
	StatusError
	// StatusReady means the latest request succeeded.
	StatusReady
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Request is an issued query.
type Request struct {
	Seq  uint64
	Vars orgs.Variables
}

// Result is the outcome of a Request.
type Result struct {
	Seq     uint64
	Vars    orgs.Variables
	Conn    *orgs.Connection
	Err     error
	Elapsed time.Duration
}

// Executor tracks the latest request and the last good page.
type Executor struct {
	fetcher Fetcher
	timeout time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	seq     uint64
	pending uint64
	status  Status
	err     error
	slot    Slot
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout bounds each fetch. Zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor returns an idle executor backed by f.
func NewExecutor(f Fetcher, opts ...Option) *Executor {
	e := &Executor{
		fetcher: f,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Begin registers a new request for vars and marks the executor loading. Any earlier
// request still in flight becomes obsolete. The previous error is cleared.
func (e *Executor) Begin(vars orgs.Variables) Request {
	e.seq++
	e.pending = e.seq
	e.status = StatusLoading
	e.err = nil
	e.logger.Debug().
		Uint64("seq", e.seq).
		Str("sort", vars.Sort.String()).
		Bool("filtered", !vars.Filter.IsZero()).
		Str("page", string(vars.Page.Direction)).
		Msg("query started")
	return Request{Seq: e.seq, Vars: vars}
}

// Fetch runs req against the fetcher. It does not touch executor state and may be
// called from any goroutine.
func (e *Executor) Fetch(ctx context.Context, req Request) Result {
	res := Result{Seq: req.Seq, Vars: req.Vars}
	if e.fetcher == nil {
		res.Err = ErrNoFetcher
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := e.now()
	res.Conn, res.Err = e.fetcher.FetchOrganisations(ctx, req.Vars)
	res.Elapsed = e.now().Sub(start)
	if res.Err == nil && res.Conn == nil {
		res.Conn = &orgs.Connection{}
	}
	return res
}

// Apply commits res if it answers the latest request and reports whether it did.
// A successful result replaces the stored page; a failed one keeps it.
func (e *Executor) Apply(res Result) bool {
	if res.Seq != e.pending || e.status != StatusLoading {
		e.logger.Debug().
			Uint64("seq", res.Seq).
			Uint64("latest", e.pending).
			Msg("dropping superseded query result")
		return false
	}

	if res.Err != nil {
		e.status = StatusError
		e.err = res.Err
		e.logger.Error().Err(res.Err).Uint64("seq", res.Seq).Dur("elapsed", res.Elapsed).Msg("query failed")
		return true
	}

	e.status = StatusReady
	e.slot.Store(res.Vars, res.Conn)
	e.logger.Debug().
		Uint64("seq", res.Seq).
		Int("nodes", len(res.Conn.Nodes)).
		Int("total", res.Conn.TotalCount).
		Dur("elapsed", res.Elapsed).
		Msg("query completed")
	return true
}

// Run begins, fetches and applies in one call. It is meant for one-shot callers that
// have no update loop.
func (e *Executor) Run(ctx context.Context, vars orgs.Variables) (*orgs.Connection, error) {
	res := e.Fetch(ctx, e.Begin(vars))
	e.Apply(res)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Conn, nil
}

// Status returns the state of the latest request.
func (e *Executor) Status() Status {
	return e.status
}

// Loading reports whether the latest request is still in flight.
func (e *Executor) Loading() bool {
	return e.status == StatusLoading
}

// Err returns the error of the latest request, if it failed.
func (e *Executor) Err() error {
	return e.err
}

// Data returns the last good page, which stays available while a newer request loads.
func (e *Executor) Data() (*orgs.Connection, bool) {
	return e.slot.Load()
}

// Slot exposes the last-good-page cache.
func (e *Executor) Slot() *Slot {
	return &e.slot
}
