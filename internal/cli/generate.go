package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonizer/pkg/config"
	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	preset        string   // named preset the config starts from
	presetSet     bool     // whether --preset was given; it then beats the file's preset
	configPath    string   // TOML or YAML file applied on top of the preset
	factories     []string // per-category overrides, "XX,min,max,recirc,weight"
	targets       []string // per-document targets, "ints[,doubles[,strings]]"
	multiplier    int      // key multiplier override
	multiplierSet bool     // whether --key-multiplier was given
	seed          uint64   // random seed (0 = time-based)
	output        string   // output directory; empty writes to stdout
	formats       string   // comma-separated output formats
	detailed      bool     // serials and counts in DOT/SVG labels
	tui           bool     // live progress view
	quiet         bool     // spinner instead of log lines, no summary
}

// generateCommand creates the generate command, the main entry point for
// producing documents.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		preset:     config.DefaultPreset,
		multiplier: config.DefaultKeyMultiplier,
		formats:    pipeline.FormatJSON,
	}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate JSON documents",
		Long: `Generate runs the assembly line until every requested document holds at
least its target number of int, double and string values.

The factory configuration starts from a preset, is merged with a TOML or
YAML config file (--config, or config.toml in the user config directory) and
is finally patched by individual --factory overrides.

Without --output each document is written to stdout, one per line.`,
		Example: `  # Six documents with the default targets
  jsonizer generate

  # Two documents, the second with 5 ints, 10 doubles and 10 strings
  jsonizer generate -t 20 -t 5,10

  # Deep arrays of ints, rendered as JSON and SVG
  jsonizer generate -p godbolt -c AI,4,12,80,3 -f json,svg -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.presetSet = cmd.Flags().Changed("preset")
			opts.multiplierSet = cmd.Flags().Changed("key-multiplier")
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", opts.preset, "factory preset: default, godbolt, complex")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML or YAML config file (default: $XDG_CONFIG_HOME/jsonizer/config.toml if present)")
	cmd.Flags().StringArrayVarP(&opts.factories, "factory", "c", nil, "factory override XX[,min[,max[,recirc[,weight]]]] (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.targets, "target", "t", nil, "document target ints[,doubles[,strings]] (repeatable)")
	cmd.Flags().IntVarP(&opts.multiplier, "key-multiplier", "s", opts.multiplier, "number of suffixed keys per stem")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: stdout)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show serials and counts in dot/svg output")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show a live progress view")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only show warnings and errors")

	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)
	_ = cmd.RegisterFlagCompletionFunc("factory", completeCategories)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = cmd.MarkFlagDirname("output")

	return cmd
}

// buildConfig resolves the producer config: preset, then config file, then
// factory overrides and the key multiplier. An explicit --preset wins over a
// preset named in the config file.
func (o generateOpts) buildConfig() (config.Config, error) {
	cfg, err := config.Preset(o.preset)
	if err != nil {
		return config.Config{}, err
	}

	path := o.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		var load []config.DecodeOption
		if o.presetSet {
			load = append(load, config.KeepPreset())
		}
		if cfg, err = config.Load(path, cfg, load...); err != nil {
			return config.Config{}, err
		}
	}

	for _, s := range o.factories {
		cat, p, err := config.ParseFactorySpec(s)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Set(cat, p)
	}
	if o.multiplierSet {
		cfg.KeyMultiplier = o.multiplier
	}
	return cfg, nil
}

// buildTargets parses the --target flags. No flags means the pipeline defaults.
func (o generateOpts) buildTargets() ([]part.Counts, error) {
	var out []part.Counts
	for _, s := range o.targets {
		t, err := config.ParseTarget(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// pipelineOptions turns the flags into validated pipeline options.
func (o generateOpts) pipelineOptions(logger *log.Logger) (pipeline.Options, error) {
	cfg, err := o.buildConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	targets, err := o.buildTargets()
	if err != nil {
		return pipeline.Options{}, err
	}
	formats, err := pipeline.ParseFormats(o.formats)
	if err != nil {
		return pipeline.Options{}, err
	}
	if o.output == "" && len(formats) > 1 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "multiple formats require --output")
	}
	if o.output != "" {
		if err := errors.ValidateOutputDir(o.output); err != nil {
			return pipeline.Options{}, err
		}
	}

	opts := pipeline.Options{
		Config:   cfg,
		Targets:  targets,
		Seed:     o.seed,
		Formats:  formats,
		Detailed: o.detailed,
		Logger:   logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runGenerate executes the pipeline and writes every document.
func (c *CLI) runGenerate(ctx context.Context, stdout io.Writer, o generateOpts) error {
	if o.quiet {
		c.SetLogLevel(log.WarnLevel)
	}

	logger := c.Logger
	if o.tui {
		logger = log.New(io.Discard)
	}
	opts, err := o.pipelineOptions(logger)
	if err != nil {
		return err
	}

	c.Logger.Infof("Generating %d documents (%d factories)", len(opts.Targets), len(opts.Config.Enabled()))

	var result *pipeline.Result
	switch {
	case o.tui:
		result, err = runTUI(ctx, c.newRunner(), opts)
	case o.quiet && isatty.IsTerminal(os.Stderr.Fd()):
		hooks := &runHooks{}
		restore := hooks.register()
		spinner := startStatusSpinner(ctx, len(opts.Targets), hooks)
		result, err = c.newRunner().Execute(ctx, opts)
		spinner.Stop()
		restore()
	case o.quiet:
		result, err = c.newRunner().Execute(ctx, opts)
	default:
		prog := newProgress(c.Logger)
		result, err = c.newRunner().Execute(ctx, opts)
		if err == nil {
			prog.done(fmt.Sprintf("Generated %d documents", len(result.Documents)))
		}
	}
	if err != nil {
		return err
	}

	paths, err := writeOutputs(stdout, o.output, result, opts.Formats)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		printSuccess("Wrote %d files to %s", len(paths), o.output)
		for _, p := range paths {
			printFile(p)
		}
	}
	if n := result.Stats.Produced.NotConsumed; n > 0 {
		printWarning("%d parts were never consumed by a factory and passed through as is", n)
	}
	if !o.quiet {
		printSummary(result)
	}
	return nil
}

// writeOutputs writes the rendered documents in target order. Without a
// directory the single format goes to w, one document per line; otherwise
// every artifact becomes <dir>/<document id>.<format>.
func writeOutputs(w io.Writer, dir string, result *pipeline.Result, formats []string) ([]string, error) {
	if dir == "" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "multiple formats require --output")
		}
		for _, d := range result.Documents {
			data := result.Artifacts[d.ID][formats[0]]
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	var paths []string
	for _, d := range result.Documents {
		for _, format := range formats {
			path := filepath.Join(dir, d.ID+"."+format)
			if err := os.WriteFile(path, result.Artifacts[d.ID][format], 0o644); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
