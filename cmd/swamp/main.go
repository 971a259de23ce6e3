// Command swamp is a todo list with subsequence search.
package main

import (
	"os"

	"github.com/custodia-labs/swamp/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
