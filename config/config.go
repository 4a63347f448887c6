// Package config loads widget and server settings from layered sources.
// Priority: flags > environment > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all settings for the trustgraph binary.
type Config struct {
	Data       string  `koanf:"data"`
	Port       int     `koanf:"port"`
	Width      float64 `koanf:"width"`
	Height     float64 `koanf:"height"`
	Iterations int     `koanf:"iterations"`
	Watch      bool    `koanf:"watch"`
	Drift      float64 `koanf:"drift"`
	Verbose    bool    `koanf:"verbose"`
}

const envPrefix = "TRUSTGRAPH_"

// Load assembles configuration from defaults, an optional trustgraph.toml,
// TRUSTGRAPH_* environment variables, and the given flag set.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"data":       "",
		"port":       8080,
		"width":      800.0,
		"height":     400.0,
		"iterations": 100,
		"watch":      false,
		"drift":      0.0,
		"verbose":    false,
	}
	if err := k.Load(mapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	// The config file is optional.
	_ = k.Load(file.Provider("trustgraph.toml"), toml.Parser())

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: loading env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

type mapSource struct {
	m map[string]interface{}
}

func mapProvider(m map[string]interface{}) *mapSource {
	return &mapSource{m: m}
}

func (p *mapSource) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapSource) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
