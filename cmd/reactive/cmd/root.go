// Package cmd implements the reactive CLI commands.
//
// A root command dispatches to subcommands (replay, normalize, version).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "reactive",
	Short: "Reactive - replay and inspect observable list changes",
	Long: `Reactive replays scripted list operations and prints the change
notifications, projections and normalized update batches they produce.

Use "reactive <command> --help" for more information about a command.`,
	Usage: "reactive <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Output destinations. Tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// workDir is where reactive.yaml is looked up when --dir is not given.
var workDir = "."

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the CLI with args, excluding the program name.
func ExecuteArgs(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a directory path")
			}
			workDir = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--dir=") {
				workDir = strings.TrimPrefix(arg, "--dir=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printVersion() {
	fmt.Fprintf(stdout, "reactive version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --dir DIR            Directory holding reactive.yaml (default: .)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  reactive replay scenario.yaml      Replay a scenario")
	fmt.Fprintln(stdout, "  reactive normalize batch.yaml      Normalize an update batch")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
