package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/orgboard/internal/cli"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "endpoint: http://localhost:4000/graphql")

	_, _, err = execute(t, "config", "init")
	require.ErrorIs(t, err, cli.ErrConfigExists)

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, "config", "show", "--endpoint", "https://api.example.org/graphql")
	require.NoError(t, err)
	assert.Contains(t, stdout, "endpoint: https://api.example.org/graphql")
	assert.Contains(t, stdout, "page_size: 10")
}

func TestConfigShow_Overlay(t *testing.T) {
	home := setupCLITest(t)

	overlay := writeOverlay(t, home, `server:
  addr: ":9000"
  store: arango
  page_size: 25
  cache_ttl: 5s
  arango:
    url: http://db:8529
    user: root
    password: hunter2
    database: orgboard
    collection: organisations
`)

	stdout, _, err := execute(t, "config", "show", "--config", overlay)
	require.NoError(t, err)
	assert.Contains(t, stdout, "9000")
	assert.Contains(t, stdout, "store: arango")
	assert.NotContains(t, stdout, "hunter2")
}

func TestRoot_InvalidConfig(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "config", "show", "--endpoint", "ftp://example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
