package config

import (
	"strconv"
	"strings"

	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/part"
)

// ParseFactorySpec parses "XX[,min[,max[,recirc[,weight]]]]".
// Omitted or empty fields take the values of [DefaultParams].
//
// Example:
//
//	cat, p, err := config.ParseFactorySpec("AI,4,12,80")
//	// cat == config.AI, p == config.Params{Min: 4, Max: 12, Recirc: 80, Weight: 1}
func ParseFactorySpec(s string) (Category, Params, error) {
	fields := strings.Split(s, ",")
	cat, err := ParseCategory(fields[0])
	if err != nil {
		return 0, Params{}, err
	}
	if len(fields) > 5 {
		return 0, Params{}, errors.New(errors.ErrCodeInvalidInput, "factory spec %q has more than 5 fields", s)
	}

	p := DefaultParams()
	dst := []*int{&p.Min, &p.Max, &p.Recirc, &p.Weight}
	for i, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, Params{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "factory spec %q: field %d", s, i+2)
		}
		*dst[i] = v
	}
	if err := p.validate(cat); err != nil {
		return 0, Params{}, err
	}
	return cat, p, nil
}

// ParseTarget parses a document target "ints[,doubles[,strings]]".
//
// A single value applies to all three types; two values set ints and then
// doubles and strings together; three values set each type.
func ParseTarget(s string) (part.Counts, error) {
	fields := strings.Split(s, ",")
	if len(fields) > 3 {
		return part.Counts{}, errors.New(errors.ErrCodeInvalidTarget, "target %q has more than 3 fields", s)
	}

	var vals []int
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			vals = append(vals, -1)
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return part.Counts{}, errors.New(errors.ErrCodeInvalidTarget, "target %q: %q is not a non-negative integer", s, f)
		}
		vals = append(vals, v)
	}

	var c part.Counts
	set := func(v int, dst ...*int) {
		if v < 0 {
			return
		}
		for _, d := range dst {
			*d = v
		}
	}
	set(vals[0], &c.Ints, &c.Doubles, &c.Strings)
	if len(vals) > 1 {
		set(vals[1], &c.Doubles, &c.Strings)
	}
	if len(vals) > 2 {
		set(vals[2], &c.Strings)
	}
	return c, nil
}
