package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ndtprep/examtrainer/internal/config"
	"github.com/ndtprep/examtrainer/internal/entrypoint"
	"github.com/ndtprep/examtrainer/internal/seeder"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "seed":
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runSeed populates the configured backend with the initial question bank
// and exits, without starting the HTTP server.
func runSeed() error {
	cfg := config.NewConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st, err := entrypoint.NewStore(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := st.Open(ctx); err != nil {
		return err
	}
	defer st.Close()

	return seeder.New(st, logger).Seed(ctx)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve  Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  seed   Load the initial question bank into the configured backend and exit\n")
}
