package main

import (
	"fmt"
	"os"

	app "github.com/MarkZakelj/pytoty/internal"
	"github.com/MarkZakelj/pytoty/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing pytoty: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = a.Close() }()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
