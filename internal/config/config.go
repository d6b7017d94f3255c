// Package config loads command line settings. Sources are layered, later ones
// winning: built-in defaults, an optional YAML file, TAGEXPAND_* environment
// variables and finally explicitly set flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "TAGEXPAND_"

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "tagexpand.yaml"

// Config holds the resolved settings.
type Config struct {
	Templates       string   `koanf:"templates"`
	Input           string   `koanf:"input"`
	Output          string   `koanf:"output"`
	Extensions      []string `koanf:"extensions"`
	MaxPasses       int      `koanf:"max_passes"`
	Concurrency     int      `koanf:"concurrency"`
	Sanitize        bool     `koanf:"sanitize"`
	Minify          bool     `koanf:"minify"`
	ContinueOnError bool     `koanf:"continue_on_error"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"templates":         "templates",
		"input":             "pages",
		"output":            "public",
		"extensions":        []string{".html", ".tpl"},
		"max_passes":        0,
		"concurrency":       0,
		"sanitize":          false,
		"minify":            false,
		"continue_on_error": false,
	}
}

// Options controls where Load looks.
type Options struct {
	// File names a YAML config file. It must exist when set; when empty,
	// DefaultFile is used if present.
	File string

	// Flags are layered last. Only flags the user changed override earlier
	// sources. Flag names use dashes where keys use underscores.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	path, required := opts.File, true
	if path == "" {
		path, required = DefaultFile, false
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	} else if required || !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := loadEnv(k); err != nil {
		return Config{}, err
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := Defaults()[key]; !known {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

func loadEnv(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "extensions" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// Validate rejects settings the build cannot work with.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Templates) == "":
		return errors.New("config: templates directory is required")
	case c.MaxPasses < 0:
		return fmt.Errorf("config: max_passes must not be negative, got %d", c.MaxPasses)
	case c.Concurrency < 0:
		return fmt.Errorf("config: concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
