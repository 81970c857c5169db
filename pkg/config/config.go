// Package config loads malt's layered configuration: embedded defaults,
// an optional user config file, and MALT_* environment overrides.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	malterrors "github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// EnvConfigDir overrides the directory searched for the user config file.
const EnvConfigDir = "MALT_CONFIG_DIR"

// Settings is the closed set of configuration keys malt recognizes.
type Settings struct {
	Paths struct {
		Prefix string `koanf:"prefix"`
		Cellar string `koanf:"cellar"`
		Taps   string `koanf:"taps"`
	} `koanf:"paths"`

	Taps struct {
		Default string `koanf:"default"`
	} `koanf:"taps"`

	Names struct {
		CaskPattern     string   `koanf:"cask_pattern"`
		ArchiveSuffixes []string `koanf:"archive_suffixes"`
	} `koanf:"names"`
}

// Load builds the effective settings. Later sources win: embedded
// defaults, then the user config file, then MALT_* environment variables.
func Load() (*Settings, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, malterrors.Wrap(err, malterrors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if path, parser := findUserConfig(); path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, malterrors.Wrap(err, malterrors.ErrConfigParse, "failed to parse user config").
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	}

	if err := k.Load(env.Provider("MALT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "MALT_")), "_", ".")
	}), nil); err != nil {
		return nil, malterrors.Wrap(err, malterrors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Settings
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, malterrors.Wrap(err, malterrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	applyDerivedPaths(&cfg)

	logger.Trace().
		Str("prefix", cfg.Paths.Prefix).
		Str("cellar", cfg.Paths.Cellar).
		Str("taps", cfg.Paths.Taps).
		Msg("Configuration loaded")

	return &cfg, nil
}

// applyDerivedPaths fills cellar and taps from the prefix when unset.
func applyDerivedPaths(cfg *Settings) {
	if cfg.Paths.Cellar == "" {
		cfg.Paths.Cellar = filepath.Join(cfg.Paths.Prefix, "Cellar")
	}
	if cfg.Paths.Taps == "" {
		cfg.Paths.Taps = filepath.Join(cfg.Paths.Prefix, "Library", "Taps")
	}
}

// findUserConfig locates the user config file and the parser for it.
// MALT_CONFIG_DIR wins over the XDG config home. TOML is tried before
// YAML.
func findUserConfig() (string, koanf.Parser) {
	dirs := []string{}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, filepath.Join(xdg.ConfigHome, "malt"))

	for _, dir := range dirs {
		for _, candidate := range []struct {
			name   string
			parser koanf.Parser
		}{
			{"malt.toml", toml.Parser()},
			{"malt.yaml", yaml.Parser()},
		} {
			path := filepath.Join(dir, candidate.name)
			if _, err := os.Stat(path); err == nil {
				return path, candidate.parser
			}
		}
	}
	return "", nil
}
