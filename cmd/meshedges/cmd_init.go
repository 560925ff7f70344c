package main

import (
	"fmt"
	"os"

	"github.com/DreamCats/meshedges/internal/config"
)

// handleInit writes the default config template unless a config already exists
func handleInit(configPath string) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fatalf("Failed to determine config path: %v", err)
		}
	}

	created, err := config.WriteDefaultTemplate(path)
	if err != nil {
		fatalf("Failed to write config: %v", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Created default config at %s\n", path)
		return
	}
	fmt.Fprintf(os.Stderr, "Config already exists at %s\n", path)
}
