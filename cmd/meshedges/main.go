package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/DreamCats/meshedges/cmd/meshedges/internal"
	"github.com/DreamCats/meshedges/internal/config"
)

// main parses global flags, loads the configuration and runs the subcommand.
func main() {
	log.SetOutput(io.Discard)
	if len(os.Args) < 2 {
		internal.PrintUsage()
		os.Exit(1)
	}

	args := os.Args[1:]
	opts, err := parseGlobalArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		internal.PrintUsage()
		os.Exit(1)
	}
	if opts.help {
		internal.PrintUsage()
		os.Exit(0)
	}
	if opts.version {
		fmt.Printf("meshedges version %s\n", internal.Version)
		os.Exit(0)
	}

	configPath := opts.configPath
	verbose := opts.verbose
	subcommandIndex := opts.subcommandIndex

	if subcommandIndex == -1 {
		fmt.Fprintf(os.Stderr, "Error: No subcommand specified\n\n")
		internal.PrintUsage()
		os.Exit(1)
	}

	subcommand := args[subcommandIndex]
	subcommandArgs := args[subcommandIndex+1:]

	if subcommand == "init" {
		handleInit(configPath)
		return
	}

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		if config.IsConfigNotFound(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := internal.SetupLogging(subcommand, inputName(subcommandArgs), verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize log file: %v\n", err)
	}

	switch subcommand {
	case "export":
		handleExport(cfg, subcommandArgs)
	case "batch":
		handleBatch(cfg, subcommandArgs)
	case "verify":
		handleVerify(cfg, subcommandArgs)
	case "stats":
		handleStats(cfg, subcommandArgs)
	}
}

var validSubcommands = map[string]bool{
	"export": true,
	"batch":  true,
	"verify": true,
	"stats":  true,
	"init":   true,
}

// globalOptions holds the flags given before the subcommand.
// -v is version, -verbose copies log output to stderr.
type globalOptions struct {
	configPath      string
	verbose         bool
	help            bool
	version         bool
	subcommandIndex int
}

// parseGlobalArgs finds the subcommand and parses the flags in front of it.
// subcommandIndex is -1 when no subcommand was given.
func parseGlobalArgs(args []string) (globalOptions, error) {
	opts := globalOptions{subcommandIndex: -1}
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") && validSubcommands[arg] {
			opts.subcommandIndex = i
			break
		}
	}

	globalFlags := args
	if opts.subcommandIndex >= 0 {
		globalFlags = args[:opts.subcommandIndex]
	}
	for i := 0; i < len(globalFlags); i++ {
		arg := globalFlags[i]
		switch arg {
		case "-config", "--config":
			if i+1 >= len(globalFlags) {
				return opts, fmt.Errorf("%s needs a path", arg)
			}
			opts.configPath = globalFlags[i+1]
			i++
		case "-verbose", "--verbose":
			opts.verbose = true
		case "-h", "-help", "--help":
			opts.help = true
		case "-v", "-version", "--version":
			opts.version = true
		default:
			return opts, fmt.Errorf("unknown global flag: %s", arg)
		}
	}
	return opts, nil
}

// fatalf logs the failure and reports it on stderr, then exits with status 1.
func fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// inputName picks the value of -in or -root from raw subcommand args for the log file name.
func inputName(args []string) string {
	for i, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(name, "="); ok && (k == "in" || k == "root") {
			return v
		}
		if (name == "in" || name == "root") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
