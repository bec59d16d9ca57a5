// Command bridgectl validates and describes bridge definition catalogs.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/bridge/cmd/bridgectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
