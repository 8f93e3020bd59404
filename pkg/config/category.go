package config

import (
	"strings"

	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/factory"
	"github.com/matzehuels/jsonizer/pkg/part"
)

// Category identifies one of the fifteen factory types.
//
// The two-letter codes read as container (K=keyed leaf, A=array, O=object)
// followed by content (I=int, D=double, S=string, A=arrays, O=objects,
// M=mixed).
type Category int

const (
	KI Category = iota
	KD
	KS
	AI
	AD
	AS
	AA
	AO
	AM
	OI
	OD
	OS
	OA
	OO
	OM
)

// Categories lists every category in registration order.
var Categories = []Category{KI, KD, KS, AI, AD, AS, AA, AO, AM, OI, OD, OS, OA, OO, OM}

var categoryNames = [...]string{
	KI: "KI", KD: "KD", KS: "KS",
	AI: "AI", AD: "AD", AS: "AS", AA: "AA", AO: "AO", AM: "AM",
	OI: "OI", OD: "OD", OS: "OS", OA: "OA", OO: "OO", OM: "OM",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "??"
	}
	return categoryNames[c]
}

// ParseCategory parses a two-letter category code, case-insensitively.
func ParseCategory(s string) (Category, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if categoryNames[c] == up {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidCategory,
		"unknown factory category %q (must be one of KI,KD,KS, AI,AD,AS,AO,AA,AM, OI,OD,OS,OA,OO,OM)", s)
}

// MarshalText implements encoding.TextMarshaler so categories can key TOML tables.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Keyed reports whether the category is a keyed-leaf factory.
func (c Category) Keyed() bool {
	return c == KI || c == KD || c == KS
}

// Leaf returns the leaf kind handled by keyed and simple container
// categories. For the others it returns part.Int, which is ignored.
func (c Category) Leaf() part.Kind {
	switch c {
	case KD, AD, OD:
		return part.Double
	case KS, AS, OS:
		return part.String
	}
	return part.Int
}

// Shape returns the container shape of a non-keyed category.
func (c Category) Shape() factory.Shape {
	switch c {
	case AI, AD, AS:
		return factory.SimpleArray
	case OI, OD, OS:
		return factory.SimpleObject
	case AO:
		return factory.ArrayOfObjects
	case AA:
		return factory.ArrayOfArrays
	case AM:
		return factory.MixedArray
	case OA:
		return factory.ObjectOfArrays
	case OO:
		return factory.ObjectOfObjects
	}
	return factory.MixedObject
}
