package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/service"
)

var testFlags struct {
	casesFile string
	format    string
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run golden expression cases",
	Long: `Run a file of golden cases and compare the generated code.

Each case either expects output (the printed code including any imports)
or an error code. Case Format (YAML):

  cases:
    - name: "quadratic"
      expression: "2x^2 + 3x"
      language: python
      expected: "2*x**2+3*x"
    - name: "declared variable"
      expression: "a(b+1)"
      language: js
      variables: [a]
      expected: "a*(b+1)"
    - name: "unknown function"
      expression: "f(x)"
      language: php
      error: UnknownFunction`,
	Example: `  mathgen test --cases cases.yaml
  mathgen test --cases cases.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runTests,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVarP(&testFlags.casesFile, "cases", "t", "", "golden case file")
	testCmd.Flags().StringVar(&testFlags.format, "format", "text", "output format: text, json, yaml")

	// Mark required flags - panic if this fails as it's a programming error
	if err := testCmd.MarkFlagRequired("cases"); err != nil {
		panic(fmt.Sprintf("failed to mark cases flag as required: %v", err))
	}
}

// TestSuite is a file of golden cases.
type TestSuite struct {
	Cases []TestCase `yaml:"cases"`
}

// TestCase is one golden case.
type TestCase struct {
	Name         string   `yaml:"name"`
	Expression   string   `yaml:"expression"`
	Language     string   `yaml:"language"`
	Variables    []string `yaml:"variables"`
	Conventional bool     `yaml:"conventional"`
	Strict       bool     `yaml:"strict"`
	Expected     *string  `yaml:"expected"`
	Error        string   `yaml:"error"`
}

// TestResult is the outcome of one case.
type TestResult struct {
	Name     string        `json:"name" yaml:"name"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Got      string        `json:"got,omitempty" yaml:"got,omitempty"`
	Want     string        `json:"want,omitempty" yaml:"want,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// TestSummary is printed by the structured output formats.
type TestSummary struct {
	Passed  int          `json:"passed" yaml:"passed"`
	Failed  int          `json:"failed" yaml:"failed"`
	Results []TestResult `json:"results" yaml:"results"`
}

func runTests(cmd *cobra.Command, args []string) error {
	suite, err := loadTestCases(testFlags.casesFile)
	if err != nil {
		return cli.NewCommandError("test", fmt.Errorf("failed to load test cases: %w", err))
	}
	if len(suite.Cases) == 0 {
		return fmt.Errorf("no test cases found in %s", testFlags.casesFile)
	}

	gen := service.New(service.OptionsFromConfig(appConfig.Parser))

	summary := TestSummary{Results: make([]TestResult, 0, len(suite.Cases))}
	for _, tc := range suite.Cases {
		result := runTestCase(cmd, gen, tc)
		summary.Results = append(summary.Results, result)
		if result.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	out := cmd.OutOrStdout()
	if testFlags.format == string(cli.FormatText) {
		rows := make([][]string, 0, len(summary.Results))
		for _, r := range summary.Results {
			status := "PASS"
			detail := ""
			if !r.Passed {
				status = "FAIL"
				detail = r.Error
				if detail == "" {
					detail = fmt.Sprintf("got %q, want %q", r.Got, r.Want)
				}
			}
			rows = append(rows, []string{status, r.Name, fmt.Sprintf("%.1fms", r.Duration.Seconds()*1000), detail})
		}
		cli.RenderTable(out, []string{"Result", "Case", "Time", "Detail"}, rows)
		fmt.Fprintf(out, "\n%d passed, %d failed\n", summary.Passed, summary.Failed)
	} else {
		formatter, err := cli.NewFormatter(cli.OutputFormat(testFlags.format))
		if err != nil {
			return cli.NewExitError(cli.ExitUsage, err)
		}
		if err := formatter.FormatTo(out, summary); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return cli.Reported(cli.ExitFailure, fmt.Errorf("%d of %d cases failed", summary.Failed, len(suite.Cases)))
	}
	return nil
}

func runTestCase(cmd *cobra.Command, gen *service.Generator, tc TestCase) TestResult {
	start := time.Now()
	result := TestResult{Name: tc.Name}

	generated, err := gen.Generate(cmd.Context(), service.Request{
		Expression:   tc.Expression,
		Language:     tc.Language,
		Variables:    tc.Variables,
		Conventional: tc.Conventional,
		Strict:       tc.Strict,
	})
	result.Duration = time.Since(start)

	switch {
	case tc.Error != "":
		result.Want = tc.Error
		if err == nil {
			result.Got = generated.Output
			result.Error = fmt.Sprintf("expected error %s, got output %q", tc.Error, generated.Output)
			return result
		}
		result.Got = service.ErrorCode(err)
		if result.Got != tc.Error {
			result.Error = fmt.Sprintf("expected error %s, got %s", tc.Error, result.Got)
			return result
		}
	case err != nil:
		result.Error = fmt.Sprintf("unexpected error %s: %s", service.ErrorCode(err), firstLine(err.Error()))
		return result
	case tc.Expected != nil:
		result.Got = generated.Output
		result.Want = *tc.Expected
		if result.Got != result.Want {
			return result
		}
	}

	result.Passed = true
	return result
}

func loadTestCases(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	for i, tc := range suite.Cases {
		if tc.Name == "" {
			suite.Cases[i].Name = fmt.Sprintf("case %d", i+1)
		}
		if tc.Expected == nil && tc.Error == "" {
			return nil, fmt.Errorf("%s: one of expected or error is required", suite.Cases[i].Name)
		}
	}
	return &suite, nil
}
