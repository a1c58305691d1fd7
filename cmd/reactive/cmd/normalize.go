package cmd

import (
	"fmt"

	"github.com/go-drift/reactive/cmd/reactive/internal/scenario"
	"github.com/go-drift/reactive/pkg/normalize"
)

func init() {
	RegisterCommand(&Command{
		Name:  "normalize",
		Short: "Normalize a batch of row updates",
		Long: `Normalize a batch of sequentially issued row updates for a table view
that applies every delete first, in pre-batch indices, and then every add,
in post-batch indices.

An add whose row is deleted later in the same batch cancels out.`,
		Usage: "reactive normalize <batch.yaml>",
		Run:   runNormalize,
	})
}

func runNormalize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("batch file required (usage: reactive normalize <batch.yaml>)")
	}

	b, err := scenario.LoadBatch(args[0])
	if err != nil {
		return err
	}
	updates, err := b.ToUpdates()
	if err != nil {
		return err
	}

	normalized := normalize.Normalize(updates)
	deletes, adds := normalize.Split(normalized)

	fmt.Fprintf(stdout, "Input:      %v\n", updates)
	fmt.Fprintf(stdout, "Normalized: %v\n", normalized)
	fmt.Fprintf(stdout, "Deletes:    %v\n", deletes)
	fmt.Fprintf(stdout, "Adds:       %v\n", adds)
	return nil
}
