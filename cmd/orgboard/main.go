// Command orgboard lists blockchain organisations from a GraphQL API and serves a
// reference implementation of that API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/orgboard/internal/cli"
	"github.com/rshade/orgboard/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}
