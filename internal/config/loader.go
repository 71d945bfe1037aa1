package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TEETRIP_CONFIG is set
//  3. env (prefix TEETRIP_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TEETRIP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TEETRIP_ADDR, TEETRIP_CACHE_TTL_SECONDS, ...
	// mapped to the flat koanf keys on the struct, underscores preserved.
	envProvider := env.Provider("TEETRIP_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "teetrip_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxPlayers < 1 {
		return nil, fmt.Errorf("%w: max_players must be at least 1", ErrInvalidConfig)
	}
	if cfg.BatchConcurrency < 1 {
		return nil, fmt.Errorf("%w: batch_concurrency must be at least 1", ErrInvalidConfig)
	}
	return &cfg, nil
}
