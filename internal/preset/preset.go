// Package preset persists named shadow parameter sets as a flat YAML file.
// Fields are copied explicitly between the parameter struct and the store;
// there is no reflection-based mapping.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
	"github.com/MeKo-Tech/dropshadow/internal/shadow"
)

// Store reads and writes presets in a single YAML file.
type Store struct {
	path string
	v    *viper.Viper
}

// Open loads the preset file at path, creating an empty store when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
			}
		}
	}

	return &Store{path: path, v: v}, nil
}

// Save stores params under name and writes the file.
func (s *Store) Save(name string, params shadow.Params) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid preset %q: %w", name, err)
	}

	prefix := "presets." + name + "."
	s.v.Set(prefix+"color.r", params.Color.R)
	s.v.Set(prefix+"color.g", params.Color.G)
	s.v.Set(prefix+"color.b", params.Color.B)
	s.v.Set(prefix+"color.a", params.Color.A)
	s.v.Set(prefix+"opacity", params.Opacity)
	s.v.Set(prefix+"angle", params.AngleDegrees)
	s.v.Set(prefix+"distance", params.DistancePixels)
	s.v.Set(prefix+"spread", params.Spread)
	s.v.Set(prefix+"blur-radius", params.BlurRadius)
	s.v.Set(prefix+"padding", params.Padding)

	return s.write()
}

// Load returns the preset stored under name.
func (s *Store) Load(name string) (shadow.Params, error) {
	prefix := "presets." + name
	if !s.v.IsSet(prefix) {
		return shadow.Params{}, fmt.Errorf("preset %q not found", name)
	}

	prefix += "."
	params := shadow.Params{
		Color: pixbuf.RGBA{
			R: s.v.GetFloat64(prefix + "color.r"),
			G: s.v.GetFloat64(prefix + "color.g"),
			B: s.v.GetFloat64(prefix + "color.b"),
			A: s.v.GetFloat64(prefix + "color.a"),
		},
		Opacity:        s.v.GetFloat64(prefix + "opacity"),
		AngleDegrees:   s.v.GetFloat64(prefix + "angle"),
		DistancePixels: s.v.GetFloat64(prefix + "distance"),
		Spread:         s.v.GetFloat64(prefix + "spread"),
		BlurRadius:     s.v.GetInt(prefix + "blur-radius"),
		Padding:        s.v.GetInt(prefix + "padding"),
	}

	if err := params.Validate(); err != nil {
		return shadow.Params{}, fmt.Errorf("preset %q is invalid: %w", name, err)
	}

	return params, nil
}

// List returns the stored preset names in sorted order.
func (s *Store) List() []string {
	presets := s.v.GetStringMap("presets")
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete removes the preset with the given name and rewrites the file.
func (s *Store) Delete(name string) error {
	presets := s.v.GetStringMap("presets")
	if _, ok := presets[name]; !ok {
		return fmt.Errorf("preset %q not found", name)
	}
	delete(presets, name)

	// Viper has no key removal; rebuild the store from the remaining map.
	fresh := viper.New()
	fresh.SetConfigFile(s.path)
	fresh.SetConfigType("yaml")
	fresh.Set("presets", presets)
	s.v = fresh

	return s.write()
}

func (s *Store) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preset dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write preset file %s: %w", s.path, err)
	}
	return nil
}
