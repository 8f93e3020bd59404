package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonizer/pkg/config"
	"github.com/matzehuels/jsonizer/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for jsonizer.

Bash:
  $ source <(jsonizer completion bash)

Zsh:
  $ jsonizer completion zsh > "${fpath[1]}/_jsonizer"

Fish:
  $ jsonizer completion fish | source

PowerShell:
  PS> jsonizer completion powershell | Out-String | Invoke-Expression

Preset names, factory categories and output formats complete as well.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completePresets completes built-in preset names.
func completePresets(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range config.PresetNames() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name+"\t"+presetDescriptions[name])
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeCategories completes the category prefix of a factory spec.
func completeCategories(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.Contains(toComplete, ",") {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, cat := range config.Categories {
		if strings.HasPrefix(cat.String(), strings.ToUpper(toComplete)) {
			out = append(out, cat.String()+",")
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	var out []string
	for _, f := range []string{pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG} {
		if strings.HasPrefix(f, last) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
