// Package pipeline runs the complete jsonizer production pipeline.
//
// This package wires the producer, the assemblies and the renderers into
// a single call that the CLI (and anything else embedding jsonizer) uses.
// By centralizing this logic, every entry point gets the same defaults,
// validation and output formats.
//
// # Architecture
//
// A run has three stages:
//
//  1. Produce: one producer goroutine turns raw leaves into products
//  2. Assemble: one goroutine per target builds a document from products
//  3. Render: every document is rendered in the requested formats
//
// The producer is stopped as soon as the last assembly finishes; products
// nobody claimed are reported as leftovers.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Config:  config.Default(),
//	    Targets: []part.Counts{{Ints: 10, Doubles: 10, Strings: 10}},
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	json := result.Artifacts[result.Documents[0].ID]["json"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsonizer/pkg/assembly"
	"github.com/matzehuels/jsonizer/pkg/config"
	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/producer"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTargets are the documents generated when none are requested: six
// documents with 70, 60, 50, 40, 30 and 20 values of each type.
func DefaultTargets() []part.Counts {
	var out []part.Counts
	for _, n := range []int{70, 60, 50, 40, 30, 20} {
		out = append(out, part.Counts{Ints: n, Doubles: n, Strings: n})
	}
	return out
}

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Config is the producer configuration. A config without any factory
	// is replaced by the default preset.
	Config config.Config

	// Targets lists one minimum leaf count per document.
	Targets []part.Counts

	// Seed fixes the random source. Zero picks a time-based seed.
	// Runs are only reproducible up to goroutine scheduling.
	Seed uint64

	// Formats lists the renderings to produce for every document.
	Formats []string

	// Detailed adds serials and counts to DOT and SVG node labels.
	Detailed bool

	// Logger receives progress and summary lines.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Documents are the assembled documents, in target order.
	Documents []*assembly.Document

	// Artifacts holds the rendered outputs keyed by document ID and format.
	Artifacts map[string]map[string][]byte

	// Leftover lists the products no assembly claimed.
	Leftover []*part.Part

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Documents    int
	Bytes        int // total JSON size
	Produced     producer.Stats
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, e.g. "json,svg".
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if err := ValidateFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Config.Enabled()) == 0 {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Targets) == 0 {
		o.Targets = DefaultTargets()
	}
	for _, t := range o.Targets {
		if t.Ints < 0 || t.Doubles < 0 || t.Strings < 0 {
			return errors.New(errors.ErrCodeInvalidTarget, "negative target %+v", t)
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
