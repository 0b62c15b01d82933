/*
Package cli provides command-line interface utilities for mathgen.

The cli package includes output formatters, tables, error diagnostics, a
progress reporter and the exit-code conventions used by the mathgen command.

Output Formatting:

Structured command results can be printed as text, JSON or YAML:

	formatter, err := cli.NewFormatter(cli.FormatYAML)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Diagnostics:

Expression errors are printed with their code, a caret under the failing
position and the suggestion, colored when the writer is a terminal:

	diag := cli.NewDiagnostics(os.Stderr, !noColor)
	diag.Print(err)

Exit Codes:

Commands return errors; main maps them to a process exit code with ExitCode.
An *ExitError carries an explicit code, any other error exits with 1:

	return cli.NewExitError(cli.ExitUsage, err)

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
