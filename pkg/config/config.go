// Package config holds the producer parameters for jsonizer.
//
// A [Config] describes everything the production pipeline consumes: per
// factory category size bounds, recirculation percentage and dispatch
// weight; the key-stem pool and its multiplier; and the raw value pools.
//
// Configs come from three places, applied in this order by the CLI:
//
//  1. A named preset ([Preset]): "default", "godbolt" or "complex"
//  2. A TOML or YAML file ([Load])
//  3. Individual factory overrides ([ParseFactorySpec])
//
// # TOML layout
//
//	key_multiplier = 52
//	keys = ["alpha", "beta"]
//	ints = [[1, 2, 3], [10, 11]]
//
//	[factories.AI]
//	min = 4
//	max = 12
//	recirc = 80
//	weight = 1
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/jsonizer/pkg/errors"
)

// Factory parameter defaults, used for fields omitted from a factory spec.
const (
	DefaultMin    = 1
	DefaultMax    = 2
	DefaultRecirc = 50
	DefaultWeight = 1
)

// DefaultKeyMultiplier expands every stem with suffixes "" through "zz" and
// part of the three-letter range.
const DefaultKeyMultiplier = 26 * 26 * 2

// Params configures one factory category.
type Params struct {
	// Min and Max bound the number of children of emitted containers.
	// When Max <= Min every container has exactly Min children.
	// Ignored by keyed-leaf categories.
	Min int
	Max int

	// Recirc is the percentage of emitted parts sent back to the work queue
	// instead of becoming products.
	Recirc int

	// Weight is the number of times the factory is offered the queue head on
	// every dispatch pass. Zero disables the factory.
	Weight int
}

// DefaultParams returns the parameters used for omitted spec fields.
func DefaultParams() Params {
	return Params{Min: DefaultMin, Max: DefaultMax, Recirc: DefaultRecirc, Weight: DefaultWeight}
}

// Config is the complete producer configuration.
type Config struct {
	Factories     map[Category]Params
	Keys          []string
	KeyMultiplier int
	Ints          [][]int64
	Doubles       [][]float64
	Strings       [][]string
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := Config{
		Factories:     maps.Clone(c.Factories),
		Keys:          slices.Clone(c.Keys),
		KeyMultiplier: c.KeyMultiplier,
	}
	if out.Factories == nil {
		out.Factories = make(map[Category]Params)
	}
	for _, g := range c.Ints {
		out.Ints = append(out.Ints, slices.Clone(g))
	}
	for _, g := range c.Doubles {
		out.Doubles = append(out.Doubles, slices.Clone(g))
	}
	for _, g := range c.Strings {
		out.Strings = append(out.Strings, slices.Clone(g))
	}
	return out
}

// Set stores the parameters for one category.
func (c *Config) Set(cat Category, p Params) {
	if c.Factories == nil {
		c.Factories = make(map[Category]Params)
	}
	c.Factories[cat] = p
}

// Params returns the parameters of cat. Categories missing from the config
// are disabled (zero weight).
func (c Config) Params(cat Category) Params {
	return c.Factories[cat]
}

// Enabled returns the categories with a positive weight, in registration order.
func (c Config) Enabled() []Category {
	var out []Category
	for _, cat := range Categories {
		if c.Factories[cat].Weight > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Validate checks parameter ranges and the key pool.
// It reports every problem found, not just the first.
func (c Config) Validate() error {
	var errs []error
	for _, cat := range Categories {
		p, ok := c.Factories[cat]
		if !ok {
			continue
		}
		if err := p.validate(cat); err != nil {
			errs = append(errs, err)
		}
	}
	if c.KeyMultiplier < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "key multiplier must not be negative: %d", c.KeyMultiplier))
	}
	seen := make(map[string]bool, len(c.Keys))
	for _, k := range c.Keys {
		if err := errors.ValidateKeyStem(k); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[k] {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "duplicate key stem %q", k))
		}
		seen[k] = true
	}
	return errors.Join(errs...)
}

func (p Params) validate(cat Category) error {
	switch {
	case p.Min < 0 || p.Max < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: lengths must not be negative (min=%d, max=%d)", cat, p.Min, p.Max)
	case p.Recirc < 0 || p.Recirc > 100:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: recirc must be within 0-100, got %d", cat, p.Recirc)
	case p.Weight < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: weight must not be negative, got %d", cat, p.Weight)
	}
	return nil
}

// spec renders the params in factory-spec form, e.g. "AI,4,12,80,1".
func (p Params) spec(cat Category) string {
	return fmt.Sprintf("%s,%d,%d,%d,%d", cat, p.Min, p.Max, p.Recirc, p.Weight)
}

// Specs returns the factory specs of every configured category, in
// registration order.
func (c Config) Specs() []string {
	var out []string
	for _, cat := range Categories {
		if p, ok := c.Factories[cat]; ok {
			out = append(out, p.spec(cat))
		}
	}
	return out
}
