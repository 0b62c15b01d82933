package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/service"
)

var checkFlags struct {
	files    []string
	dir      string
	language string
	progress bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate expression files",
	Long: `Validate files of expressions, one expression per line.

Blank lines and lines starting with # are skipped. Every expression is
parsed and validated for unknown names and argument counts; with --lang it
is also printed for that language. All errors across all files are
reported before the command fails.

Directories are scanned for *.math and *.txt files.`,
	Example: `  # Check a single file
  mathgen check --file formulas.math

  # Check a directory, declaring variables
  mathgen check --dir expressions/ --var a,b

  # Make sure every expression prints as PHP
  mathgen check --dir expressions/ --lang php`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVarP(&checkFlags.files, "file", "f", nil, "expression file to check (repeatable)")
	checkCmd.Flags().StringVarP(&checkFlags.dir, "dir", "d", "", "directory of expression files")
	checkCmd.Flags().StringVarP(&checkFlags.language, "lang", "l", "", "also print every expression for this language")
	checkCmd.Flags().BoolVar(&checkFlags.progress, "progress", false, "show a progress bar")
	addExpressionFlags(checkCmd)
}

// checkFailure is one failed expression and where it came from.
type checkFailure struct {
	origin string
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := checkFiles()
	if err != nil {
		return err
	}

	gen := service.New(service.OptionsFromConfig(appConfig.Parser))
	if checkFlags.language != "" {
		if _, err := gen.Registry().Get(checkFlags.language); err != nil {
			cli.NewDiagnostics(cmd.ErrOrStderr(), useColor()).Print(err)
			return cli.Reported(cli.ExitUsage, err)
		}
	}

	var progress *cli.SimpleProgress
	if checkFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "Checking")
		progress.Start(int64(len(files)))
	}

	var (
		result   *multierror.Error
		failures []checkFailure
		checked  int
	)
	for i, file := range files {
		expressions, err := readExpressions(file)
		if err != nil {
			result = multierror.Append(result, err)
			failures = append(failures, checkFailure{err: err})
		}

		var fileErr error
		for _, e := range expressions {
			checked++
			origin := fmt.Sprintf("%s:%d", file, e.line)
			if err := checkExpression(cmd, gen, e.text); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", origin, err))
				failures = append(failures, checkFailure{origin: origin, err: err})
				fileErr = err
			}
		}

		if progress != nil {
			if err == nil {
				err = fileErr
			}
			progress.Error(err)
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	diag := cli.NewDiagnostics(cmd.ErrOrStderr(), useColor())
	for _, f := range failures {
		diag.PrintFor(f.origin, f.err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Checked %d expression(s) in %d file(s): %d error(s)\n",
		checked, len(files), len(failures))

	if err := result.ErrorOrNil(); err != nil {
		return cli.Reported(cli.ExitFailure, err)
	}
	return nil
}

func checkExpression(cmd *cobra.Command, gen *service.Generator, text string) error {
	req := service.Request{
		Expression:   text,
		Language:     checkFlags.language,
		Variables:    genFlags.variables,
		Conventional: genFlags.conventional,
		Strict:       true,
	}
	if checkFlags.language == "" {
		_, err := gen.Parse(cmd.Context(), req)
		return err
	}
	_, err := gen.Generate(cmd.Context(), req)
	return err
}

func checkFiles() ([]string, error) {
	if len(checkFlags.files) == 0 && checkFlags.dir == "" {
		return nil, cli.NewExitError(cli.ExitUsage, fmt.Errorf("either --file or --dir must be specified"))
	}

	files := append([]string(nil), checkFlags.files...)
	if checkFlags.dir != "" {
		for _, pattern := range []string{"*.math", "*.txt"} {
			matches, err := filepath.Glob(filepath.Join(checkFlags.dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list expression files: %w", err)
			}
			files = append(files, matches...)
		}
		if len(files) == len(checkFlags.files) {
			return nil, fmt.Errorf("no expression files found in %s", checkFlags.dir)
		}
	}
	sort.Strings(files)
	return files, nil
}

type expressionLine struct {
	line int
	text string
}

// readExpressions returns the non-blank, non-comment lines of path.
func readExpressions(path string) ([]expressionLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []expressionLine
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, expressionLine{line: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
