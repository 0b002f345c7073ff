// Command structgen writes compound object structure files.
package main

import (
	"os"

	"github.com/leapstack-labs/structgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
