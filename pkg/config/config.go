// Package config loads and resolves the settings a bpetrain run needs:
// how wide the skip field is, where the first merge id starts, and how
// large the trained vocabulary should grow.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/djeday123/bpecore/core"
	"github.com/djeday123/bpecore/train"
)

// Config is the on-disk training configuration, loaded from JSON and
// resolved into the core.Width and train.Config the trainer needs.
type Config struct {
	SkipBits        uint8        `json:"skip_bits"`
	FirstEmitID     core.TokenId `json:"first_emit_id"`
	TargetVocabSize int          `json:"target_vocab_size"`
	ProgressEvery   int          `json:"progress_every"`
}

// DefaultConfig returns the configuration bpetrain uses when no config
// file is given on the command line — spec.md §6's defaults for
// skip_bits, first_emit_id and target_vocab_size.
func DefaultConfig() *Config {
	return &Config{
		SkipBits:        8,
		FirstEmitID:     256,
		TargetVocabSize: 512,
		ProgressEvery:   500,
	}
}

// Load reads and parses a JSON config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}

// Resolve turns the on-disk fields into the core.Width and train.Config
// values the trainer actually takes, validating SkipBits along the way.
func (c *Config) Resolve() (train.Config, error) {
	width, err := core.NewWidth(c.SkipBits)
	if err != nil {
		return train.Config{}, fmt.Errorf("config: resolve: %w", err)
	}
	return train.Config{
		Width:           width,
		FirstEmitID:     c.FirstEmitID,
		TargetVocabSize: c.TargetVocabSize,
	}, nil
}
