package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/watch"
)

var watchFlags struct {
	file     string
	language string
	output   string
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate code when an expression file changes",
	Long: `Watch an expression file and regenerate code whenever it is saved.

The file holds one expression; blank lines and # comments are skipped and
the remaining lines are joined. The output file is replaced atomically, and
is left untouched when the expression fails to parse.`,
	Example: `  mathgen watch --file area.math --lang python --out area.py
  mathgen watch --file f.math --lang js --var a --debounce 250ms`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "expression file to watch")
	watchCmd.Flags().StringVarP(&watchFlags.language, "lang", "l", "", "target language (default: output.default_language)")
	watchCmd.Flags().StringVarP(&watchFlags.output, "out", "o", "", "file to write generated code to (default: stdout)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before regenerating (default: watch.debounce)")
	addExpressionFlags(watchCmd)

	if err := watchCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	language := watchFlags.language
	if language == "" {
		language = appConfig.Output.DefaultLanguage
	}
	debounce := watchFlags.debounce
	if debounce == 0 {
		debounce = appConfig.Watch.Debounce
	}

	diag := cli.NewDiagnostics(cmd.ErrOrStderr(), useColor())

	gen, closeGen, err := newGenerator(appConfig)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer closeGen()

	if _, err := gen.Registry().Get(language); err != nil {
		diag.Print(err)
		return cli.Reported(cli.ExitUsage, err)
	}

	w, err := watch.New(watch.Config{
		Input:        watchFlags.file,
		Output:       watchFlags.output,
		Language:     language,
		Variables:    genFlags.variables,
		Conventional: genFlags.conventional,
		Strict:       genFlags.strict,
		Debounce:     debounce,
	}, gen)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	w.WithLogger(logger.Slog())

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", watchFlags.file)

	err = w.Watch(ctx, func(result *service.Result, err error) {
		if err != nil {
			diag.PrintFor(watchFlags.file, err)
			return
		}
		if watchFlags.output == "" {
			fmt.Fprintln(out, result.Output)
			return
		}
		fmt.Fprintf(out, "✓ %s → %s (%s)\n", watchFlags.file, watchFlags.output, result.Language)
	})
	if stopErr := w.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}
