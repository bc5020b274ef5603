package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/orgboard/internal/config"
	"github.com/rshade/orgboard/internal/server"
	"github.com/rshade/orgboard/internal/store"
	"github.com/rshade/orgboard/internal/store/arango"
)

// cacheStatsInterval is how often serve logs cache hit rates.
const cacheStatsInterval = time.Minute

type serveParams struct {
	addr     string
	store    string
	fixture  string
	seed     bool
	pageSize int
}

// NewServeCmd creates the serve command, which runs the reference GraphQL server.
func NewServeCmd() *cobra.Command {
	var params serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve organisations over GraphQL",
		Long: `Run the reference GraphQL server for the organisations listing.

Data comes from a YAML fixture (the bundled one unless --fixture is given) or from an
ArangoDB collection configured under server.arango. --seed loads the fixture into
ArangoDB before serving.`,
		Example: `  orgboard serve
  orgboard serve --addr :8080 --fixture ./orgs.yaml
  orgboard serve --store arango --seed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.addr, "addr", "", "listen address (default from config server.addr)")
	cmd.Flags().StringVar(&params.store, "store", "", "data store: fixture or arango (default from config server.store)")
	cmd.Flags().StringVar(&params.fixture, "fixture", "", "YAML fixture file (default: bundled fixture)")
	cmd.Flags().BoolVar(&params.seed, "seed", false, "seed the arango collection from the fixture before serving")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "organisations per page (default from config server.page_size)")

	return cmd
}

func runServe(cmd *cobra.Command, params serveParams) error {
	cfg := *config.GetGlobalConfig()
	if params.addr != "" {
		cfg.Server.Addr = params.addr
	}
	if params.store != "" {
		cfg.Server.Store = params.store
	}
	if params.fixture != "" {
		cfg.Server.Fixture = params.fixture
	}
	if params.pageSize != 0 {
		cfg.Server.PageSize = params.pageSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid server settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.With().Str("operation", "serve").Logger()
	backing, err := openStore(ctx, cfg.Server, params.seed, log)
	if err != nil {
		return err
	}
	cached := store.NewCached(backing, cfg.Server.CacheTTL)

	schema, err := server.NewSchema(server.NewResolver(cached, cfg.Server.PageSize, log))
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}
	srv := server.NewServer(server.NewApp(schema, log), cfg.Server.Addr, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return srv.Run(gctx)
	})
	g.Go(func() error {
		logCacheStats(gctx, cached, log)
		return nil
	})
	return g.Wait()
}

// openStore builds the configured backing store.
func openStore(ctx context.Context, cfg config.ServerConfig, seed bool, log zerolog.Logger) (store.Store, error) {
	fixture := func() (*store.Memory, error) {
		if cfg.Fixture == "" {
			return store.DefaultFixture()
		}
		return store.LoadFixtureFile(cfg.Fixture)
	}

	switch cfg.Store {
	case config.StoreArango:
		db, err := arango.Open(ctx, arango.Config{
			URL:        cfg.Arango.URL,
			User:       cfg.Arango.User,
			Password:   cfg.Arango.Password,
			Database:   cfg.Arango.Database,
			Collection: cfg.Arango.Collection,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("opening arango store: %w", err)
		}
		if seed {
			mem, ferr := fixture()
			if ferr != nil {
				return nil, fmt.Errorf("loading seed fixture: %w", ferr)
			}
			if err = db.Seed(ctx, mem.All()); err != nil {
				return nil, fmt.Errorf("seeding arango store: %w", err)
			}
			log.Info().Int("organisations", mem.Len()).Msg("arango store seeded")
		}
		return db, nil
	default:
		mem, err := fixture()
		if err != nil {
			return nil, fmt.Errorf("loading fixture: %w", err)
		}
		log.Info().Int("organisations", mem.Len()).Str("fixture", cfg.Fixture).Msg("fixture store loaded")
		return mem, nil
	}
}

func logCacheStats(ctx context.Context, cached *store.Cached, log zerolog.Logger) {
	ticker := time.NewTicker(cacheStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hits, misses := cached.Stats()
			log.Debug().Int64("hits", hits).Int64("misses", misses).Msg("store cache stats")
		}
	}
}
