package config

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/jsonizer/pkg/errors"
)

// DecodeYAML reads a YAML config from r and applies it on top of base,
// with the same merge rules and key names as [Decode]:
//
//	preset: godbolt
//	key_multiplier: 52
//	factories:
//	  AI: {min: 4, max: 12}
func DecodeYAML(r io.Reader, base Config, opts ...DecodeOption) (Config, error) {
	var f file
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&f); err != nil {
		if err == io.EOF {
			return file{}.apply(base, opts...)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
	}
	return f.apply(base, opts...)
}

// EncodeYAML writes c as YAML.
func EncodeYAML(w io.Writer, c Config) error {
	return yaml.NewEncoder(w).Encode(fileOf(c))
}
