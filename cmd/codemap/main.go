package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/codemap/internal/config"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Budget      int
	IncludeCST  bool
	ServeMCP    bool
	Addr        string
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("codemap", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the target project")
	fs.IntVar(&flags.Budget, "budget", 0, "token budget for context rendering (default from codemap.yml)")
	fs.BoolVar(&flags.IncludeCST, "cst", false, "include the concrete syntax tree in JSON exports")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server")
	fs.StringVar(&flags.Addr, "addr", "localhost:8743", "listen address for -serve-mcp")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.Budget > 0 {
		cfg.TokenBudget = flags.Budget
	}
	if flags.IncludeCST {
		cfg.IncludeCST = true
	}
	if flags.Verbose {
		cfg.Verbose = true
	}

	if flags.ServeMCP {
		return runServe(flags.ProjectRoot, flags.Addr, cfg)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("usage: codemap [flags] <index|context|export|diagram|query> [args]")
	}

	switch rest[0] {
	case "index":
		return runIndex(flags.ProjectRoot, cfg)
	case "context":
		return runContext(flags.ProjectRoot, cfg, rest[1:])
	case "export":
		return runExportJSON(flags.ProjectRoot, cfg, rest[1:])
	case "diagram":
		return runDiagram(flags.ProjectRoot, cfg)
	case "query":
		return runQuery(flags.ProjectRoot, cfg, rest[1:])
	default:
		return fmt.Errorf("unknown command: %s", rest[0])
	}
}
