/*
Package config manages TOML config for lexhnd's induction engine and CLI.

InitConfig handles automatic config file creation and loading with fallback to defaults.
LoadConfig and SaveConfig provide direct fs for runtime changes.
Update allows targeted parameter changes with persistence.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Lexicon   LexiconConfig   `toml:"lexicon"`
	Minseg    MinsegConfig    `toml:"minseg"`
	Induction InductionConfig `toml:"induction"`
	CLI       CliConfig       `toml:"cli"`
}

// LexiconConfig has hash-table tuning for pkg/lexicon.
type LexiconConfig struct {
	InitialCapacity int     `toml:"initial_capacity"`
	LoadFactor      float64 `toml:"load_factor"`
}

// MinsegConfig bounds the segmenter's working set.
type MinsegConfig struct {
	MaxLength   int `toml:"max_length"`
	JoinCeiling int `toml:"join_ceiling"`
}

// InductionConfig controls the MDL refinement loop.
type InductionConfig struct {
	Iterations int `toml:"iterations"`
	NewWords   int `toml:"new_words_per_iter"`
	// PairJoinBootstrap chooses whether iteration 0 seeds the candidate
	// pool with pair-joined segments (true) or raw segments like
	// iteration N's pass 1 (false).
	PairJoinBootstrap bool `toml:"pair_join_bootstrap"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	ReportPath   string `toml:"report_path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			InitialCapacity: 1024,
			LoadFactor:      0.70,
		},
		Minseg: MinsegConfig{
			MaxLength:   200,
			JoinCeiling: 100,
		},
		Induction: InductionConfig{
			Iterations:        15,
			NewWords:          25,
			PairJoinBootstrap: true,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
			ReportPath:   "",
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return config, nil
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(config)
}

// Update changes the induction/iteration parameters and saves to file.
func (c *Config) Update(configPath string, iterations, newWords *int, pairJoinBootstrap *bool) error {
	ind := &c.Induction
	if iterations != nil {
		ind.Iterations = *iterations
	}
	if newWords != nil {
		ind.NewWords = *newWords
	}
	if pairJoinBootstrap != nil {
		ind.PairJoinBootstrap = *pairJoinBootstrap
	}
	return SaveConfig(c, configPath)
}
