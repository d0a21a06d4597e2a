// Command claimant answers questions about insurance claim documents
// using two-tier retrieval over indexed pages.
package main

import (
	"os"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
