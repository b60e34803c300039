// Package config assembles opack's settings. Sources are applied in order
// of increasing precedence: built-in defaults, a TOML file, OPACK_*
// environment variables, then command-line flags (applied by the caller).
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is prepended to the env tag of every field.
const EnvPrefix = "OPACK_"

type Config struct {
	// Destination of the generated code. Empty means standard output.
	Output string `toml:"output" env:"OUTPUT"`

	// Files and directories to pack, in order.
	Inputs []string `toml:"inputs" env:"INPUTS" envSeparator:"," validate:"min=1"`

	// Prefix seeding for directory inputs: "first" or "own".
	Seed string `toml:"seed" env:"SEED" validate:"oneof=first own"`

	// Extra glob patterns excluded from packed directories.
	Ignore []string `toml:"ignore" env:"IGNORE" envSeparator:"," validate:"dive,glob"`

	MaxDepth int  `toml:"max_depth" env:"MAX_DEPTH" validate:"gte=0"`
	Strict   bool `toml:"strict" env:"STRICT"`
	Quiet    bool `toml:"quiet" env:"QUIET"`
}

func Default() Config {
	return Config{Seed: "first"}
}

// LoadFile overlays the settings found in a TOML file. Keys the file does
// not mention keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errors.Errorf("%s:%d:%d: %s", path, row, col, derr.Error())
		}
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

// LoadEnv overlays OPACK_* variables from environ, or from the process
// environment when environ is nil. Unset variables leave fields untouched.
func (c *Config) LoadEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.Wrap(err, "environment")
	}
	return nil
}

// Load builds a Config from the defaults, the optional file at path and
// the process environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return c, err
		}
	}
	err := c.LoadEnv(nil)
	return c, err
}
