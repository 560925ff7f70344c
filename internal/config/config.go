package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutputPath is where exports go when nothing else is configured
const DefaultOutputPath = "/tmp/mesh.csv"

// DefaultProgressThreshold is the edge count from which a progress bar is shown
const DefaultProgressThreshold = 10000

// Config holds the application configuration
type Config struct {
	Input    InputConfig    `yaml:"input,omitempty"`
	Output   OutputConfig   `yaml:"output"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	Progress ProgressConfig `yaml:"progress,omitempty"`
	Batch    BatchConfig    `yaml:"batch,omitempty"`
}

// InputConfig holds mesh source configuration
type InputConfig struct {
	Format string `yaml:"format,omitempty"` // "auto" | "obj" | "yaml" | "json" | "sqlite"
	Mesh   string `yaml:"mesh,omitempty"`   // Mesh name inside a SQLite database
}

// OutputConfig holds CSV output configuration
type OutputConfig struct {
	Path string `yaml:"path"`
	// Precision is the number of fixed-point digits; -1 keeps the shortest exact form
	Precision *int `yaml:"precision,omitempty"`
}

// ExportConfig holds exporter behaviour
type ExportConfig struct {
	MalformedEdges string `yaml:"malformed_edges,omitempty"` // "reject" | "skip"
}

// ProgressConfig holds progress bar configuration
type ProgressConfig struct {
	Threshold int  `yaml:"threshold,omitempty"`
	Disabled  bool `yaml:"disabled,omitempty"`
}

// BatchConfig holds batch export configuration
type BatchConfig struct {
	Glob    string   `yaml:"glob,omitempty"`
	OutDir  string   `yaml:"out_dir,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// DefaultPath returns ~/.meshedges/config/meshedges.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".meshedges", "config", "meshedges.yaml"), nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the default config file.
// A missing default file is not an error: the built-in defaults are used.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromFile(path)
	if IsConfigNotFound(err) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaultPath, _ := DefaultPath()
			return nil, &ConfigNotFoundError{
				RequestedPath: path,
				DefaultPath:   defaultPath,
			}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ConfigNotFoundError is returned when config file is not found
type ConfigNotFoundError struct {
	RequestedPath string
	DefaultPath   string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at: %s\n\nDefault location: %s\n\nYou can:\n"+
		"  1. Run 'meshedges init' to create the default config file\n"+
		"  2. Specify a custom path with -config flag\n"+
		"  3. Run without -config to use built-in defaults",
		e.RequestedPath, e.DefaultPath)
}

// IsConfigNotFound checks if error is config not found
func IsConfigNotFound(err error) bool {
	_, ok := err.(*ConfigNotFoundError)
	return ok
}

// expandPath expands ~ and $HOME to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "$HOME/") || path == "$HOME" {
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		if path == "$HOME" {
			return homeDir
		}
		return filepath.Join(homeDir, path[6:])
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Input.Format == "" {
		c.Input.Format = "auto"
	}

	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	c.Output.Path = expandPath(c.Output.Path)
	if c.Output.Precision == nil {
		shortest := -1
		c.Output.Precision = &shortest
	}

	if c.Export.MalformedEdges == "" {
		c.Export.MalformedEdges = "reject"
	}

	if c.Progress.Threshold == 0 {
		c.Progress.Threshold = DefaultProgressThreshold
	}

	if c.Batch.Glob == "" {
		c.Batch.Glob = "**/*.obj"
	}
	if c.Batch.OutDir != "" {
		c.Batch.OutDir = expandPath(c.Batch.OutDir)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Input.Format {
	case "auto", "obj", "yaml", "json", "sqlite":
	default:
		return fmt.Errorf("unsupported input format: %s", c.Input.Format)
	}

	if c.Output.Precision != nil && (*c.Output.Precision < -1 || *c.Output.Precision > 17) {
		return fmt.Errorf("precision must be between -1 and 17, got: %d", *c.Output.Precision)
	}

	switch c.Export.MalformedEdges {
	case "reject", "skip":
	default:
		return fmt.Errorf("malformed_edges must be reject or skip, got: %s", c.Export.MalformedEdges)
	}

	if c.Progress.Threshold < 0 {
		return fmt.Errorf("progress threshold must not be negative, got: %d", c.Progress.Threshold)
	}

	return nil
}

const defaultConfigTemplate = `# meshedges configuration
#
# Default location: $HOME/.meshedges/config/meshedges.yaml

input:
  # Mesh source format: "auto" (by extension), "obj", "yaml", "json" or "sqlite"
  format: auto
  # Mesh name inside a SQLite database (empty selects the only mesh)
  # mesh: cube

output:
  # Destination CSV file, overwritten on every export
  path: /tmp/mesh.csv
  # Fixed-point digits per coordinate; -1 writes the shortest exact value
  precision: -1

export:
  # What to do with edges that do not reference exactly two vertices:
  # "reject" fails the export, "skip" leaves them out
  malformed_edges: reject

progress:
  # Show a progress bar on a terminal for meshes with at least this many edges
  threshold: 10000

batch:
  glob: "**/*.obj"
  # out_dir: ~/exports
  exclude:
    - "**/.git/**"
`

// WriteDefaultTemplate creates a default configuration file if it does not exist.
// It returns true if a file was created, false if it already existed.
func WriteDefaultTemplate(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
