// Package config handles loading and hot-reloading sides configuration.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// HeuristicsConfig tunes the line-classification heuristics.
type HeuristicsConfig struct {
	// Exclamations replaces the allow-list of short all-caps words
	// accepted inside dialogue. Empty keeps the built-in list.
	Exclamations []string `mapstructure:"exclamations" yaml:"exclamations,omitempty"`

	// SceneMarkers replaces the scene/transition indicator substrings
	// that terminate a dialogue block. Empty keeps the built-in list.
	SceneMarkers []string `mapstructure:"scene_markers" yaml:"scene_markers,omitempty"`

	// FurniturePatterns are extra removal patterns (case-insensitive
	// regular expressions) appended to the normalizer rules.
	FurniturePatterns []string `mapstructure:"furniture_patterns" yaml:"furniture_patterns,omitempty"`

	// DisableEllipsisBreak keeps a block open when a dialogue line
	// trails off with "...".
	DisableEllipsisBreak bool `mapstructure:"disable_ellipsis_break" yaml:"disable_ellipsis_break,omitempty"`
}

// WatchConfig defines settings for the watch command.
type WatchConfig struct {
	// Dir is the drop directory to watch for new scripts.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	// StableSeconds is how long a new file's size must stay unchanged
	// before it is picked up.
	StableSeconds int `mapstructure:"stable_seconds" yaml:"stable_seconds,omitempty"`
}

// Config is the top-level configuration structure for sides.
type Config struct {
	// Characters are the default speakers to extract when a command is
	// given none.
	Characters []string `mapstructure:"characters" yaml:"characters,omitempty"`

	Heuristics HeuristicsConfig `mapstructure:"heuristics" yaml:"heuristics,omitempty"`
	Watch      WatchConfig      `mapstructure:"watch" yaml:"watch,omitempty"`
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("characters", defaults.Characters)
	viper.SetDefault("heuristics", defaults.Heuristics)
	viper.SetDefault("watch", defaults.Watch)

	// Environment variables with SIDES_ prefix
	viper.SetEnvPrefix("SIDES")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.sides")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfigFile enables hot-reloading of configuration.
func (cm *Manager) WatchConfigFile() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
