// Command reactive replays list scenarios and normalizes update batches.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/reactive/cmd/reactive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
