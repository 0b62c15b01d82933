package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/service"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool
)

var genFlags struct {
	variables    []string
	conventional bool
	strict       bool
}

var rootCmd = &cobra.Command{
	Use:   "mathgen [flags] <language>",
	Short: "Generate source code from math expressions",
	Long: `Mathgen reads a math expression from stdin and prints equivalent source code
for the target language.

Expressions are written the way they are on paper: "2x^2 + sin(y)/3" has
implicit multiplication, function calls and exponentiation. Identifiers
declared with --var multiply a following group instead of being called.

Languages: python (py, python3), javascript (js, node), php, go (golang).

Exit status is 2 when the language is missing or unknown and 1 when the
expression cannot be parsed or printed.`,
	Example: `  echo "2x^2 + sqrt(y)" | mathgen python
  echo "a(b+1)" | mathgen js --var a
  mathgen php --conventional < formula.math`,
	Version:           Version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil && !cli.IsReported(err) {
		cli.NewDiagnostics(rootCmd.ErrOrStderr(), useColor()).Print(err)
	}
	return cli.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: defaults plus MATHGEN_* environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	addExpressionFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewExitError(cli.ExitUsage, fmt.Errorf("%w\nRun '%s --help' for usage", err, cmd.CommandPath()))
	})
}

// addExpressionFlags registers the parse option flags shared by commands
// that generate code.
func addExpressionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&genFlags.variables, "var", "V", nil, "declare a variable name (repeatable, or comma separated)")
	cmd.Flags().BoolVar(&genFlags.conventional, "conventional", false, "left-associative + - and * / % precedence")
	cmd.Flags().BoolVar(&genFlags.strict, "strict", false, "validate names and argument counts before printing")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	diag := cli.NewDiagnostics(cmd.ErrOrStderr(), useColor())

	language := appConfig.Output.DefaultLanguage
	if len(args) == 1 {
		language = args[0]
	}
	if language == "" {
		err := errors.New("missing target language")
		diag.Print(err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", cmd.UseLine())
		return cli.Reported(cli.ExitUsage, err)
	}

	gen, closeGen, err := newGenerator(appConfig)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}
	defer closeGen()

	if _, err := gen.Registry().Get(language); err != nil {
		diag.Print(err)
		return cli.Reported(cli.ExitUsage, err)
	}

	text, err := readInput(cmd.InOrStdin())
	if err != nil {
		return cli.NewCommandError("generate", err)
	}

	result, err := gen.Generate(cmd.Context(), service.Request{
		Expression:   text,
		Language:     language,
		Variables:    genFlags.variables,
		Conventional: genFlags.conventional,
		Strict:       genFlags.strict,
	})
	if err != nil {
		diag.Print(err)
		return cli.Reported(cli.ExitFailure, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	return nil
}

// readInput reads the whole expression from r without its trailing newline.
func readInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// useColor reports whether diagnostics are colored. fatih/color already
// turns colors off for non-terminals and NO_COLOR.
func useColor() bool {
	return !noColor && !color.NoColor
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
