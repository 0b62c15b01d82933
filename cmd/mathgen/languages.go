package main

import (
	"strings"

	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/service"
)

var languagesFlags struct {
	format string
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List target languages",
	Long:  `List the target languages code can be generated for, with their aliases.`,
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringVarP(&languagesFlags.format, "format", "f", "text", "output format: text, json, yaml")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	languages := service.New(service.OptionsFromConfig(appConfig.Parser)).Languages()

	if languagesFlags.format != string(cli.FormatText) {
		formatter, err := cli.NewFormatter(cli.OutputFormat(languagesFlags.format))
		if err != nil {
			return cli.NewExitError(cli.ExitUsage, err)
		}
		return formatter.FormatTo(cmd.OutOrStdout(), languages)
	}

	rows := make([][]string, 0, len(languages))
	for _, l := range languages {
		rows = append(rows, []string{l.Name, strings.Join(l.Aliases, ", ")})
	}
	cli.RenderTable(cmd.OutOrStdout(), []string{"Language", "Aliases"}, rows)
	return nil
}
