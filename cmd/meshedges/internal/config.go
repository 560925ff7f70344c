package internal

import (
	"github.com/DreamCats/meshedges/internal/config"
	"github.com/DreamCats/meshedges/internal/export"
	"github.com/DreamCats/meshedges/internal/progress"
)

// LoadConfig reads the config file at configPath, or the default config
// (falling back to built-in defaults) when configPath is empty.
func LoadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// NewExporter builds an exporter from cfg. edges sizes the progress bar;
// pass 0 to disable it.
func NewExporter(cfg *config.Config, edges int) (*export.Exporter, error) {
	policy, err := export.ParsePolicy(cfg.Export.MalformedEdges)
	if err != nil {
		return nil, err
	}
	precision := -1
	if cfg.Output.Precision != nil {
		precision = *cfg.Output.Precision
	}

	opts := []export.Option{
		export.WithPrecision(precision),
		export.WithPolicy(policy),
	}
	if !cfg.Progress.Disabled {
		if r := progress.ForEdges(edges, cfg.Progress.Threshold, "exporting"); r != nil {
			opts = append(opts, export.WithProgress(r))
		}
	}
	return export.NewExporter(opts...), nil
}
