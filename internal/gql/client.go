// Package gql is a small GraphQL-over-HTTP client for the organisations endpoint.
package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/rshade/orgboard/internal/logging"
	"github.com/rshade/orgboard/internal/orgs"
)

// Defaults for retrying failed transports.
const (
	DefaultRetries         = 3
	DefaultInitialInterval = 200 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
	maxErrorBody           = 512
)

// Request is a GraphQL request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorEntry    `json:"errors"`
}

// Client posts GraphQL requests to a single endpoint. Transport failures and 5xx
// responses are retried with exponential backoff; GraphQL errors and 4xx responses
// are returned immediately.
type Client struct {
	endpoint        string
	httpClient      *http.Client
	retries         int
	initialInterval time.Duration
	logger          zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets how many times a failed request is retried. Zero disables retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackoff sets the first retry interval.
func WithBackoff(initial time.Duration) Option {
	return func(c *Client) {
		if initial > 0 {
			c.initialInterval = initial
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for the GraphQL endpoint at endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:        endpoint,
		httpClient:      &http.Client{},
		retries:         DefaultRetries,
		initialInterval: DefaultInitialInterval,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchOrganisations runs the organisations query for vars.
func (c *Client) FetchOrganisations(ctx context.Context, vars orgs.Variables) (*orgs.Connection, error) {
	var data struct {
		Organisations *orgs.Connection `json:"organisations"`
	}
	if err := c.Do(ctx, Request{Query: OrganisationsQuery, Variables: vars.Map()}, &data); err != nil {
		return nil, err
	}
	if data.Organisations == nil {
		return nil, errors.New("graphql: response has no organisations field")
	}
	return data.Organisations, nil
}

// Do posts req and decodes the data member of the response into out.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = DefaultMaxInterval
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.retries)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		return c.post(ctx, body, out)
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Ctx(ctx).Err(err).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Str("endpoint", c.endpoint).
			Msg("graphql request failed, retrying")
	}

	if err = backoff.RetryNotify(operation, policy, notify); err != nil {
		logging.FromContext(ctx).Debug().Ctx(ctx).Err(err).Int("attempts", attempt).Msg("graphql request gave up")
		return err
	}
	return nil
}

// post performs one attempt. Errors that must not be retried are wrapped with
// backoff.Permanent.
func (c *Client) post(ctx context.Context, body []byte, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if id := logging.TraceIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Trace-Id", id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("performing request: %w", err))
		}
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBody)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Message: msg}
		if httpErr.Temporary() {
			return httpErr
		}
		return backoff.Permanent(httpErr)
	}

	var r response
	if err = json.Unmarshal(respBody, &r); err != nil {
		return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
	}
	if len(r.Errors) > 0 {
		return backoff.Permanent(&Error{Errors: r.Errors})
	}
	if out != nil && len(r.Data) > 0 {
		if err = json.Unmarshal(r.Data, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding data: %w", err))
		}
	}
	return nil
}
