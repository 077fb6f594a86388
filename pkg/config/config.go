// Package config loads prooftree settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/prooftree/pkg/merkle"
	"github.com/papercomputeco/prooftree/pkg/render"
)

// Config is the prooftree configuration.
//
// Example:
//
//	hash = "blake3"
//	debug = true
//
//	[palette]
//	target = "#ff0000"
type Config struct {
	// Hash names the leaf and node hash function: "sha256" or "blake3".
	Hash string `toml:"hash"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`

	// Palette colors rendered nodes by diagnostic label.
	// Unset entries fall back to the default palette.
	Palette render.Palette `toml:"palette"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Hash:    "sha256",
		Palette: render.DefaultPalette,
	}
}

// Load reads the file at path on top of [Default].
// An empty path, or a path that does not exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the hash name and palette colors.
func (c Config) Validate() error {
	if _, err := merkle.HasherByName(c.Hash); err != nil {
		return err
	}

	for name, color := range map[string]string{
		"normal":  c.Palette.Normal,
		"target":  c.Palette.Target,
		"witness": c.Palette.Witness,
		"path":    c.Palette.Path,
		"error":   c.Palette.Error,
	} {
		if color != "" && !hexColor.MatchString(color) {
			return fmt.Errorf("palette.%s: %q is not a #rrggbb color", name, color)
		}
	}
	return nil
}

// Hasher returns the configured hash function.
func (c Config) Hasher() (merkle.Hasher, error) {
	return merkle.HasherByName(c.Hash)
}
