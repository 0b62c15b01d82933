package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/expr/printer"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for mathgen.

To load completions:

Bash:
  $ source <(mathgen completion bash)
  # To load permanently:
  $ mathgen completion bash > /etc/bash_completion.d/mathgen

Zsh:
  $ mathgen completion zsh > "${fpath[1]}/_mathgen"
  $ compinit

Fish:
  $ mathgen completion fish | source
  # To load permanently:
  $ mathgen completion fish > ~/.config/fish/completions/mathgen.fish

PowerShell:
  PS> mathgen completion powershell | Out-String | Invoke-Expression
  # To load permanently, add to your PowerShell profile
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.ValidArgsFunction = completeLanguages
	rootCmd.AddCommand(completionCmd)
}

// completeLanguages offers the registered languages for the root command's
// positional argument.
func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry := printer.Default()
	var names []string
	for _, name := range registry.Languages() {
		names = append(names, name)
		names = append(names, registry.Aliases(name)...)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
