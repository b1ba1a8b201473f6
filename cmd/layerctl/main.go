package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Supported subcommands:
// - population: Count locations per boundary
// - expansion:  Rank boundaries for expansion

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: layerctl <command> [options]

Commands:
  population  Count current and potential locations per boundary
  expansion   Score and rank boundaries for expansion

Options:
  -locations   Comma-separated GeoJSON sources of locations (path, file://, gs://, s3://)
  -boundaries  GeoJSON source of boundary polygons
  -output      Output file (default stdout)
  -pretty      Indent the output`)
}
