package internal

import (
	"fmt"
	"os"
	"strings"
)

const Version = "0.3.1"

// PrintUsage writes the top-level usage text to stderr
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `meshedges - Export mesh edge lists as CSV

Version: %s

USAGE:
    meshedges [global options] <command> [command options]

GLOBAL OPTIONS:
    -config <path>
        Path to config file (default: ~/.meshedges/config/meshedges.yaml)

    -verbose
        Also write log output to stderr

    -v, -version
        Show version information

    -h, -help
        Show this help message

COMMANDS:
    export
        Write one CSV row per mesh edge: Ax,Ay,Az,Bx,By,Bz

    batch
        Export every mesh file matching a glob pattern

    verify
        Check an exported CSV file against its mesh

    stats
        Show vertex and edge counts for a mesh

    init
        Create the default config file

EXAMPLES:
    # Export an OBJ file to the default output (/tmp/mesh.csv)
    meshedges export -in cube.obj

    # Export a mesh stored in a SQLite database
    meshedges export -in scene.db -mesh cube -out cube.csv

    # Export all OBJ files under assets/
    meshedges batch -root assets -glob "**/*.obj" -out exports

    # Verify an export
    meshedges verify -in cube.obj -csv /tmp/mesh.csv

For detailed help on each command, use:
    meshedges <command> -help
`, Version)
}

// StringList is a flag.Value that collects multiple strings
type StringList []string

// String returns the values joined by commas
func (s *StringList) String() string {
	return strings.Join(*s, ",")
}

// Set appends one value so the flag can be repeated
func (s *StringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
