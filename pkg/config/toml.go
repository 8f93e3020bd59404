package config

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsonizer/pkg/errors"
)

// Decode reads TOML from r and applies it on top of base.
//
// A "preset" entry replaces base with the named preset first, unless
// [KeepPreset] is given. Non-empty
// key and value lists replace the corresponding lists. Factory tables
// replace the parameters of their category; fields missing from a table
// take the [DefaultParams] values. Unknown keys are an error.
func Decode(r io.Reader, base Config, opts ...DecodeOption) (Config, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %v", undecoded)
	}
	return f.apply(base, opts...)
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(fileOf(c))
}
