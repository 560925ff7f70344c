package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DreamCats/meshedges/cmd/meshedges/internal"
	"github.com/DreamCats/meshedges/internal/batch"
	"github.com/DreamCats/meshedges/internal/config"
	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/DreamCats/meshedges/internal/meshio"
	"github.com/DreamCats/meshedges/internal/progress"
)

// handleBatch implements the batch subcommand
func handleBatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var (
		root    string
		glob    string
		outDir  string
		format  string
		dryRun  bool
		exclude internal.StringList
	)
	fs.StringVar(&root, "root", ".", "Directory to search for mesh files")
	fs.StringVar(&glob, "glob", cfg.Batch.Glob, "Pattern relative to -root (supports **)")
	fs.StringVar(&outDir, "out", cfg.Batch.OutDir, "Directory for the CSV files")
	fs.StringVar(&format, "format", cfg.Input.Format, "Source format for every file: auto, obj, yaml, json, sqlite")
	fs.BoolVar(&dryRun, "dry-run", false, "List the files that would be exported")
	fs.Var(&exclude, "exclude", "Pattern to skip (repeatable, added to batch.exclude)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    meshedges batch -out <dir> [options]

DESCRIPTION:
    Export every mesh file under -root matching -glob. Each source
    <root>/<path> is written to <out>/<path>.csv. Files are processed one at a
    time and the run stops at the first failure.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    meshedges batch -root assets -glob "props/**/*.obj" -out exports
    meshedges batch -root assets -exclude "**/wip_*" -out exports -dry-run
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	patterns := append(append([]string{}, cfg.Batch.Exclude...), exclude...)
	jobs, err := batch.Plan(root, glob, patterns)
	if err != nil {
		fatalf("Failed to find mesh files: %v", err)
	}
	if dryRun {
		for _, job := range jobs {
			fmt.Println(job.Rel)
		}
		return
	}
	if outDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -out is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	if len(jobs) == 0 {
		log.Printf("No mesh files matched: root=%s glob=%s", root, glob)
		return
	}

	// Progress is tracked per file, not per edge.
	exporter, err := internal.NewExporter(cfg, 0)
	if err != nil {
		fatalf("Failed to create exporter: %v", err)
	}

	registry := meshio.NewRegistry()
	load := func(path string) (*mesh.Mesh, error) {
		return registry.Load(path, format, cfg.Input.Mesh)
	}

	var reporter progress.Reporter
	if !cfg.Progress.Disabled {
		reporter = progress.New(progress.IsTerminal(), "batch")
	}

	results, err := batch.Run(jobs, load, exporter, outDir, reporter)
	if err != nil {
		fatalf("Batch export failed after %d of %d files: %v", len(results), len(jobs), err)
	}
	log.Printf("Batch export finished: files=%d out=%s", len(results), outDir)
}
