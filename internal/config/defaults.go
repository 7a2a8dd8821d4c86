package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/sides/internal/script"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Characters: []string{},
		Heuristics: HeuristicsConfig{
			Exclamations: script.DefaultExclamations(),
			SceneMarkers: script.DefaultMarkers(),
		},
		Watch: WatchConfig{
			StableSeconds: 2,
		},
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# sides configuration
# characters: default speakers to extract when a command is given none
# heuristics: tune the dialogue classification (allow-listed exclamations,
#   scene marker substrings, extra page-furniture removal patterns)
# watch: drop-directory settings for "sides watch"

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
