package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/jsonizer/pkg/errors"
)

// file is the on-disk representation of a Config, shared by the TOML and
// YAML codecs.
type file struct {
	Preset        string                 `toml:"preset,omitempty" yaml:"preset,omitempty"`
	KeyMultiplier *int                   `toml:"key_multiplier,omitempty" yaml:"key_multiplier,omitempty"`
	Keys          []string               `toml:"keys,omitempty" yaml:"keys,omitempty"`
	Ints          [][]int64              `toml:"ints,omitempty" yaml:"ints,omitempty"`
	Doubles       [][]float64            `toml:"doubles,omitempty" yaml:"doubles,omitempty"`
	Strings       [][]string             `toml:"strings,omitempty" yaml:"strings,omitempty"`
	Factories     map[string]paramsPatch `toml:"factories,omitempty" yaml:"factories,omitempty"`
}

// paramsPatch is one factory table. Nil fields were absent from the file.
type paramsPatch struct {
	Min    *int `toml:"min,omitempty" yaml:"min,omitempty"`
	Max    *int `toml:"max,omitempty" yaml:"max,omitempty"`
	Recirc *int `toml:"recirc,omitempty" yaml:"recirc,omitempty"`
	Weight *int `toml:"weight,omitempty" yaml:"weight,omitempty"`
}

func (pp paramsPatch) params() Params {
	p := DefaultParams()
	for _, f := range []struct {
		src *int
		dst *int
	}{
		{pp.Min, &p.Min},
		{pp.Max, &p.Max},
		{pp.Recirc, &p.Recirc},
		{pp.Weight, &p.Weight},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return p
}

func patchOf(p Params) paramsPatch {
	return paramsPatch{Min: &p.Min, Max: &p.Max, Recirc: &p.Recirc, Weight: &p.Weight}
}

// DecodeOption adjusts how a config file is merged over its base.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	keepPreset bool
}

// KeepPreset ignores the file's "preset" entry, so the preset already in
// the base config stays in effect. Use it when the preset was chosen
// explicitly, for example on the command line.
func KeepPreset() DecodeOption {
	return func(o *decodeOptions) { o.keepPreset = true }
}

func newDecodeOptions(opts []DecodeOption) decodeOptions {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// apply merges f over base.
//
// A "preset" entry replaces base with the named preset first, unless
// [KeepPreset] is given. Non-empty
// key and value lists replace the corresponding lists. Factory tables
// replace the parameters of their category; fields missing from a table
// take the [DefaultParams] values.
func (f file) apply(base Config, opts ...DecodeOption) (Config, error) {
	o := newDecodeOptions(opts)
	c := base.Clone()
	if f.Preset != "" && !o.keepPreset {
		var err error
		if c, err = Preset(f.Preset); err != nil {
			return Config{}, err
		}
	}
	if f.KeyMultiplier != nil {
		c.KeyMultiplier = *f.KeyMultiplier
	}
	if len(f.Keys) > 0 {
		c.Keys = f.Keys
	}
	if len(f.Ints) > 0 {
		c.Ints = f.Ints
	}
	if len(f.Doubles) > 0 {
		c.Doubles = f.Doubles
	}
	if len(f.Strings) > 0 {
		c.Strings = f.Strings
	}
	for name, pp := range f.Factories {
		cat, err := ParseCategory(name)
		if err != nil {
			return Config{}, err
		}
		c.Set(cat, pp.params())
	}
	return c, c.Validate()
}

// fileOf converts c to its on-disk form.
func fileOf(c Config) file {
	mult := c.KeyMultiplier
	f := file{
		KeyMultiplier: &mult,
		Keys:          c.Keys,
		Ints:          c.Ints,
		Doubles:       c.Doubles,
		Strings:       c.Strings,
		Factories:     make(map[string]paramsPatch, len(c.Factories)),
	}
	for cat, p := range c.Factories {
		f.Factories[cat.String()] = patchOf(p)
	}
	return f
}

// Load reads a config file and applies it on top of base. Files ending in
// .yaml or .yml are read as YAML, everything else as TOML.
// See [Decode] for the merge rules.
func Load(path string, base Config, opts ...DecodeOption) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	decode := Decode
	if isYAML(path) {
		decode = DecodeYAML
	}
	c, err := decode(f, base, opts...)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return c, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
