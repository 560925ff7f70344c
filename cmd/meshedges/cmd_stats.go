package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DreamCats/meshedges/internal/config"
	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/DreamCats/meshedges/internal/meshio"
)

// handleStats implements the stats subcommand
func handleStats(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	var (
		input      string
		format     string
		meshName   string
		jsonOutput bool
	)
	fs.StringVar(&input, "in", "", "Mesh source file")
	fs.StringVar(&format, "format", cfg.Input.Format, "Source format: auto, obj, yaml, json, sqlite")
	fs.StringVar(&meshName, "mesh", cfg.Input.Mesh, "Mesh name inside a SQLite database")
	fs.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    meshedges stats -in <file> [options]

DESCRIPTION:
    Show vertex and edge counts, malformed edges and bounds of a mesh.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    meshedges stats -in cube.obj
    meshedges stats -in scene.db -mesh cube -json
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}
	if input == "" {
		fmt.Fprintf(os.Stderr, "Error: -in is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	m, err := meshio.NewRegistry().Load(input, format, meshName)
	if err != nil {
		fatalf("Failed to load mesh: %v", err)
	}

	malformed, outOfRange := 0, 0
	for i := range m.Edges {
		_, _, err := m.Endpoints(i)
		var malformedErr *mesh.MalformedEdgeError
		var rangeErr *mesh.VertexRangeError
		switch {
		case errors.As(err, &malformedErr):
			malformed++
		case errors.As(err, &rangeErr):
			outOfRange++
		}
	}
	lo, hi, hasBounds := m.Bounds()

	if jsonOutput {
		stats := map[string]interface{}{
			"name":         m.Name,
			"vertices":     len(m.Vertices),
			"edges":        len(m.Edges),
			"malformed":    malformed,
			"out_of_range": outOfRange,
		}
		if hasBounds {
			stats["bounds"] = map[string]mesh.Vertex{"min": lo, "max": hi}
		}
		jsonData, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("Mesh:         %s\n", m.Name)
	fmt.Printf("Vertices:     %6d\n", len(m.Vertices))
	fmt.Printf("Edges:        %6d\n", len(m.Edges))
	fmt.Printf("Malformed:    %6d\n", malformed)
	fmt.Printf("Out of range: %6d\n", outOfRange)
	if hasBounds {
		fmt.Printf("Bounds min:   (%g, %g, %g)\n", lo.X, lo.Y, lo.Z)
		fmt.Printf("Bounds max:   (%g, %g, %g)\n", hi.X, hi.Y, hi.Z)
	}
}
