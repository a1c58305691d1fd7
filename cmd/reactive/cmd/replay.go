package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/go-drift/reactive/cmd/reactive/internal/config"
	"github.com/go-drift/reactive/cmd/reactive/internal/scenario"
	"github.com/go-drift/reactive/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a scenario and print its notifications",
		Long: `Replay the steps of a scenario file against a fresh list.

Prints the final items, every change notification in order, the normalized
update batch a table view would apply and, when the scenario declares one,
the projection with its index map and notifications.

List defaults (reset_ratio, reset_floor, range_notifications) and the output
format are read from reactive.yaml in the working directory (or --dir), if
present. A relative scenario path is resolved against that directory, and the
module declared by its go.mod is printed first.`,
		Usage: "reactive replay <scenario.yaml> [--dump] [--verbose]",
		Run:   runReplay,
	})
}

type replayOptions struct {
	path    string
	dump    bool
	verbose bool
}

func parseReplayArgs(args []string) (replayOptions, error) {
	var opts replayOptions
	for _, arg := range args {
		switch arg {
		case "--dump":
			opts.dump = true
		case "--verbose":
			opts.verbose = true
		default:
			if strings.HasPrefix(arg, "--") {
				return opts, fmt.Errorf("unknown flag: %s", arg)
			}
			if opts.path != "" {
				return opts, fmt.Errorf("unexpected argument: %s", arg)
			}
			opts.path = arg
		}
	}
	if opts.path == "" {
		return opts, fmt.Errorf("scenario file required (usage: reactive replay <scenario.yaml>)")
	}
	return opts, nil
}

func runReplay(args []string) error {
	opts, err := parseReplayArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(workDir)
	if err != nil {
		return err
	}

	s, err := scenario.Load(cfg.Path(opts.path))
	if err != nil {
		return err
	}

	errors.SetHandler(&errors.LogHandler{Verbose: opts.verbose, Out: stderr})
	defer errors.SetHandler(nil)

	res, err := scenario.Run(s, cfg.ListOptions())
	if err != nil {
		return err
	}

	if cfg.ModulePath != "" {
		fmt.Fprintf(stdout, "Module: %s\n", cfg.ModulePath)
	}
	if opts.dump || cfg.Format == config.FormatDump {
		fmt.Fprintln(stdout, litter.Sdump(res))
		return nil
	}
	printResult(stdout, s, res)
	return nil
}

func printResult(w io.Writer, s *scenario.Scenario, res *scenario.Result) {
	if s.Name != "" {
		fmt.Fprintf(w, "Scenario: %s\n", s.Name)
	}
	fmt.Fprintf(w, "Items: %v\n", res.Items)
	printLines(w, "Events", res.ListEvents)

	switch {
	case res.Reset:
		fmt.Fprintln(w, "Updates: reset")
	case len(res.Updates) == 0:
		fmt.Fprintln(w, "Updates: none")
	default:
		fmt.Fprintf(w, "Updates: %v\n", res.Updates)
	}

	if s.Projection != nil {
		fmt.Fprintf(w, "Projection: %v\n", res.Projection)
		fmt.Fprintf(w, "Index map: %v\n", res.IndexMap)
		printLines(w, "Projection events", res.ProjectionEvents)
	}
	if len(res.Errors) > 0 {
		printLines(w, "Errors", res.Errors)
	}
}

func printLines(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(lines) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
