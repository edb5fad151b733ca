// Package config loads retopo settings from TOML. Values missing from the
// file keep their defaults.
//
//	[retopo]
//	precision = 40.0
//	join_angle = 25.0
//	box_margin = 0.1
//	hash_precision = 8
//	join = true
//
//	[output]
//	format = "obj"
//	name = "Retopology"
//	cage_radius = 0.01
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chazu/retopo/pkg/export"
	"github.com/chazu/retopo/pkg/mesh"
	"github.com/chazu/retopo/pkg/retopo"
	"github.com/pelletier/go-toml/v2"
)

// Config is the full settings file.
type Config struct {
	Retopo retopo.Options `toml:"retopo"`
	Output Output         `toml:"output"`
}

// Output controls what is written once the reconstruction is done.
type Output struct {
	Format     string  `toml:"format"`      // obj, stl, cage or json
	Name       string  `toml:"name"`        // mesh object name
	CageRadius float64 `toml:"cage_radius"` // rod radius for the cage format
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Retopo: retopo.DefaultOptions(),
		Output: Output{
			Format:     "obj",
			Name:       mesh.DefaultName,
			CageRadius: export.DefaultCageRadius,
		},
	}
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, len(strict.Errors))
			for i, e := range strict.Errors {
				keys[i] = strings.Join(e.Key(), ".")
			}
			return Config{}, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Retopo.Validate(); err != nil {
		return fmt.Errorf("config: [retopo]: %w", err)
	}
	if _, err := export.ForFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config: [output]: %w", err)
	}
	if c.Output.CageRadius <= 0 {
		return fmt.Errorf("config: [output]: cage_radius must be positive, got %g", c.Output.CageRadius)
	}
	return nil
}

// Sink returns the output sink the settings select.
func (c Config) Sink() (mesh.Sink, error) {
	s, err := export.ForFormat(c.Output.Format)
	if err != nil {
		return nil, err
	}
	if stl, ok := s.(export.STL); ok && stl.Kernel != nil {
		stl.Cage.Radius = c.Output.CageRadius
		s = stl
	}
	return s, nil
}
