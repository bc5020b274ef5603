// Package arango serves organisations from an ArangoDB collection.
package arango

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/store"
)

// Connection retry bounds.
const (
	connectInitialInterval = 500 * time.Millisecond
	connectMaxInterval     = 10 * time.Second
	connectMaxElapsed      = time.Minute
)

// Config locates the organisations collection.
type Config struct {
	URL        string
	User       string
	Password   string
	Database   string
	Collection string
	// InsecureTLS skips certificate verification for self-signed development servers.
	InsecureTLS bool
}

// querier is the part of arangodb.Database the store needs.
type querier interface {
	Query(ctx context.Context, query string, opts *arangodb.QueryOptions) (arangodb.Cursor, error)
}

// Store is a store.Store backed by ArangoDB.
type Store struct {
	db         querier
	collection string
	logger     zerolog.Logger
}

var _ store.Store = (*Store)(nil)

func httpConfig(endpoint connection.Endpoint, cfg Config) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(cfg.User, cfg.Password),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureTLS, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// Open connects to ArangoDB, retrying with backoff until the server answers, and
// ensures the database and collection exist.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	var client arangodb.Client

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectInitialInterval
	bo.MaxInterval = connectMaxInterval
	bo.MaxElapsedTime = connectMaxElapsed

	err := backoff.RetryNotify(func() error {
		endpoint := connection.NewRoundRobinEndpoints(strings.Split(cfg.URL, ","))
		client = arangodb.NewClient(connection.NewHttpConnection(httpConfig(endpoint, cfg)))

		info, err := client.Version(ctx)
		if err != nil {
			return err
		}
		logger.Info().Str("version", string(info.Version)).Str("license", info.License).Msg("connected to ArangoDB")
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		logger.Warn().Err(err).Dur("retry_in", wait).Msg("retrying connection to ArangoDB")
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to ArangoDB: %w", err)
	}

	db, err := ensureDatabase(ctx, client, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err = ensureCollection(ctx, db, cfg.Collection); err != nil {
		return nil, err
	}

	return &Store{db: db, collection: cfg.Collection, logger: logger}, nil
}

func ensureDatabase(ctx context.Context, client arangodb.Client, name string) (arangodb.Database, error) {
	dbs, err := client.Databases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}
	for _, db := range dbs {
		if db.Name() == name {
			var options arangodb.GetDatabaseOptions
			found, getErr := client.GetDatabase(ctx, name, &options)
			if getErr != nil {
				return nil, fmt.Errorf("getting database %q: %w", name, getErr)
			}
			return found, nil
		}
	}
	db, err := client.CreateDatabase(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("creating database %q: %w", name, err)
	}
	return db, nil
}

func ensureCollection(ctx context.Context, db arangodb.Database, name string) error {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err = db.CreateCollectionV2(ctx, name, nil); err != nil {
		return fmt.Errorf("creating collection %q: %w", name, err)
	}
	return nil
}

// List implements store.Store with one query for the window and one for the totals.
func (s *Store) List(ctx context.Context, q store.Query) (*store.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page := &store.Page{}

	listAQL, listVars := buildListQuery(s.collection, q)
	cursor, err := s.db.Query(ctx, listAQL, &arangodb.QueryOptions{BindVars: listVars})
	if err != nil {
		return nil, fmt.Errorf("querying organisations: %w", err)
	}
	defer cursor.Close()

	for cursor.HasMore() {
		var o orgs.Organisation
		if _, err = cursor.ReadDocument(ctx, &o); err != nil {
			return nil, fmt.Errorf("reading organisation: %w", err)
		}
		page.Nodes = append(page.Nodes, o)
	}

	totalsAQL, totalsVars := buildTotalsQuery(s.collection, q.Filter)
	totalsCursor, err := s.db.Query(ctx, totalsAQL, &arangodb.QueryOptions{BindVars: totalsVars})
	if err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}
	defer totalsCursor.Close()

	if totalsCursor.HasMore() {
		var t totals
		if _, err = totalsCursor.ReadDocument(ctx, &t); err != nil {
			return nil, fmt.Errorf("reading totals: %w", err)
		}
		page.TotalCount = t.Count
		page.TotalAUM = t.AUM
		page.TotalActivity = t.Activity
	}

	s.logger.Debug().
		Str("sort", q.Sort.String()).
		Int("offset", q.Offset).
		Int("nodes", len(page.Nodes)).
		Int("total", page.TotalCount).
		Msg("listed organisations")
	return page, nil
}

// Seed upserts items into the collection, keyed by organisation ID.
func (s *Store) Seed(ctx context.Context, items []orgs.Organisation) error {
	docs := make([]document, len(items))
	for i, o := range items {
		o.CreatedAt = o.CreatedAt.UTC()
		docs[i] = document{Key: o.ID, Organisation: o}
	}

	const seedAQL = `FOR d IN @docs
  UPSERT { _key: d._key } INSERT d REPLACE d IN @@collection`
	cursor, err := s.db.Query(ctx, seedAQL, &arangodb.QueryOptions{BindVars: map[string]interface{}{
		"docs":        docs,
		"@collection": s.collection,
	}})
	if err != nil {
		return fmt.Errorf("seeding organisations: %w", err)
	}
	return cursor.Close()
}

type document struct {
	Key string `json:"_key"`
	orgs.Organisation
}

type totals struct {
	Count    int     `json:"count"`
	AUM      float64 `json:"aum"`
	Activity float64 `json:"activity"`
}
