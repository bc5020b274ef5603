package cli_test

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/cli"
	"github.com/rshade/orgboard/internal/config"
	"github.com/rshade/orgboard/internal/server"
	"github.com/rshade/orgboard/internal/store"
)

// setupCLITest isolates the orgboard home directory and resets global config.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvEndpoint, "")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// startFixtureServer serves the bundled fixture and returns its GraphQL endpoint.
func startFixtureServer(t *testing.T) string {
	t.Helper()
	fixture, err := store.DefaultFixture()
	require.NoError(t, err)

	schema, err := server.NewSchema(server.NewResolver(fixture, config.DefaultPageSize, zerolog.Nop()))
	require.NoError(t, err)

	srv := httptest.NewServer(adaptor.FiberApp(server.NewApp(schema, zerolog.Nop())))
	t.Cleanup(srv.Close)
	return srv.URL + server.PathGraphQL
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithArgs("test", nil, func(string) (string, bool) { return "", false })
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeOverlay writes a --config overlay file into dir.
func writeOverlay(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
