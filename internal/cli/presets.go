package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonizer/pkg/config"
)

var presetDescriptions = map[string]string{
	"default": "every factory, short containers, 50% recirculation",
	"godbolt": "long leaf arrays, shallow nesting",
	"complex": "deep nesting, 90% recirculation",
}

// presetsCommand creates the presets command for inspecting built-in configs.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and inspect factory presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.OutOrStdout())
		},
	}
	cmd.AddCommand(c.presetsListCommand())
	cmd.AddCommand(c.presetsShowCommand())
	return cmd
}

func (c *CLI) presetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) presetsShowCommand() *cobra.Command {
	var specs, asYAML bool
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a preset as TOML or YAML",
		Long: `Show prints a preset in the config file format. Save the output to
config.toml in the jsonizer config directory to make it the base of
every run, or pass it with --config.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Preset(args[0])
			if err != nil {
				return err
			}
			if specs {
				for _, s := range cfg.Specs() {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			}
			if asYAML {
				return config.EncodeYAML(cmd.OutOrStdout(), cfg)
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVar(&specs, "specs", false, "print factory specs usable with generate -c")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of TOML")
	return cmd
}

// listPresets writes a table with one row per preset.
func listPresets(w io.Writer) error {
	var rows [][]string
	for _, name := range config.PresetNames() {
		cfg, err := config.Preset(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(cfg.Enabled())),
			presetDescriptions[name],
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Factories", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	printNextStep("Inspect one", appName+" presets show "+config.DefaultPreset)
	return nil
}
