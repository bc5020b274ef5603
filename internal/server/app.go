// Package server is the reference GraphQL server for the organisations listing. It
// serves the organisations connection from a store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/rshade/orgboard/internal/logging"
)

// Route paths.
const (
	PathHealth  = "/"
	PathGraphQL = "/graphql"
)

// TraceHeader carries a caller-supplied trace ID.
const TraceHeader = "X-Trace-Id"

const (
	bodyLimit       = 1 << 20
	readTimeout     = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// NewApp returns the fiber application serving schema.
func NewApp(schema graphql.Schema, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "orgboard",
		BodyLimit:             bodyLimit,
		ReadTimeout:           readTimeout,
		DisableStartupMessage: true,
	})

	app.Use(fiberrecover.New())
	app.Use(requestLogger(logger))
	app.Use(cors.New())

	app.Get(PathHealth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Post(PathGraphQL, GraphQLHandler(schema))

	return app
}

// requestLogger logs each request and stores a trace-aware logger in the request context.
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx := c.UserContext()
		traceID := c.Get(TraceHeader)
		if traceID == "" {
			traceID = logging.GenerateTraceID()
		}
		ctx = logging.ContextWithTraceID(ctx, traceID)
		ctx = logger.WithContext(ctx)
		c.SetUserContext(ctx)
		c.Set(TraceHeader, traceID)

		err := c.Next()

		logger.Info().Ctx(ctx).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

// GraphQLHandler returns a fiber handler executing GraphQL requests against schema.
func GraphQLHandler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var params struct {
			Query         string                 `json:"query"`
			OperationName string                 `json:"operationName"`
			Variables     map[string]interface{} `json:"variables"`
		}

		if err := c.BodyParser(&params); err != nil || params.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []map[string]interface{}{
					{"message": "Invalid request body"},
				},
			})
		}

		ctx := c.UserContext()
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  params.Query,
			VariableValues: params.Variables,
			OperationName:  params.OperationName,
			Context:        ctx,
		})

		if len(result.Errors) > 0 {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Int("errors", len(result.Errors)).
				Str("first", result.Errors[0].Message).
				Msg("graphql errors")
		}

		return c.JSON(result)
	}
}

// Server runs a fiber app until its context is cancelled.
type Server struct {
	app    *fiber.App
	addr   string
	logger zerolog.Logger
}

// NewServer returns a Server listening on addr.
func NewServer(app *fiber.App, addr string, logger zerolog.Logger) *Server {
	return &Server{app: app, addr: addr, logger: logger}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("graphql server listening")
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving on %s: %w", s.addr, err)
	}
	s.logger.Info().Msg("graphql server stopped")
	return nil
}
