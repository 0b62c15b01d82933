package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mathgen-hq/mathgen/pkg/cli"
	"mathgen-hq/mathgen/pkg/history"
	"mathgen-hq/mathgen/pkg/history/retention"
	"mathgen-hq/mathgen/pkg/history/storage"
)

var historyFlags struct {
	since      time.Duration
	language   string
	status     string
	limit      int
	offset     int
	format     string
	days       int
	maxRecords int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the generation history",
	Long: `Inspect and prune the generation history store.

Generations are recorded when history.enabled is set in the configuration.

Subcommands:
  list   - List recorded generations with filters
  prune  - Delete records outside the retention policy`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded generations",
	Long: `List recorded generations, newest first.

Examples:
  # Last hour of Python generations
  mathgen history list --since 1h --language python

  # Failed generations as JSON
  mathgen history list --status error --format json`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old generation records",
	Long: `Delete records older than the retention period and the oldest records
beyond the record cap. Flags override history.retention from the config.

Examples:
  mathgen history prune --days 7
  mathgen history prune --max-records 10000`,
	Args: cobra.NoArgs,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)

	historyListCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only records newer than this (e.g. 24h)")
	historyListCmd.Flags().StringVar(&historyFlags.language, "language", "", "filter by language")
	historyListCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by status: success, error")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", history.DefaultQueryLimit, "max results")
	historyListCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, yaml")

	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", -1, "retention period in days (default: history.retention.days)")
	historyPruneCmd.Flags().IntVar(&historyFlags.maxRecords, "max-records", -1, "record cap (default: history.retention.max_records)")
}

func openHistoryStore() (history.Store, error) {
	store, err := storage.New(appConfig.History)
	if err != nil {
		return nil, cli.NewCommandError("history", err)
	}
	return store, nil
}

func listHistory(cmd *cobra.Command, args []string) error {
	query := &history.Query{
		Language: historyFlags.language,
		Status:   history.Status(historyFlags.status),
		Limit:    historyFlags.limit,
		Offset:   historyFlags.offset,
	}
	switch query.Status {
	case "", history.StatusSuccess, history.StatusError:
	default:
		return cli.NewExitError(cli.ExitUsage, fmt.Errorf("invalid status %q (valid: success, error)", historyFlags.status))
	}
	if historyFlags.since > 0 {
		since := time.Now().Add(-historyFlags.since)
		query.Since = &since
	}

	var formatter cli.Formatter
	if historyFlags.format != string(cli.FormatText) {
		f, err := cli.NewFormatter(cli.OutputFormat(historyFlags.format))
		if err != nil {
			return cli.NewExitError(cli.ExitUsage, err)
		}
		formatter = f
	}

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if formatter != nil {
		return formatter.FormatTo(cmd.OutOrStdout(), records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		outcome := r.ErrorCode
		if r.Status == history.StatusSuccess {
			outcome = fmt.Sprintf("%d nodes", r.Nodes)
		}
		rows = append(rows, []string{
			shortID(r.ID),
			humanize.Time(r.CreatedAt),
			r.Language,
			string(r.Status),
			outcome,
			truncate(r.Expression, 40),
			r.Duration.Round(time.Microsecond).String(),
		})
	}
	cli.RenderTable(cmd.OutOrStdout(),
		[]string{"ID", "Created", "Language", "Status", "Result", "Expression", "Duration"}, rows)

	total, err := store.Count(cmd.Context(), &history.Query{
		Since:    query.Since,
		Language: query.Language,
		Status:   query.Status,
	})
	if err == nil && total > int64(len(records)) {
		fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %s records\n", len(records), humanize.Comma(total))
	}
	return nil
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	retentionCfg := appConfig.History.Retention
	if historyFlags.days >= 0 {
		retentionCfg.Days = historyFlags.days
	}
	if historyFlags.maxRecords >= 0 {
		retentionCfg.MaxRecords = historyFlags.maxRecords
	}
	if retentionCfg.Days == 0 && retentionCfg.MaxRecords == 0 {
		return cli.NewExitError(cli.ExitUsage, fmt.Errorf("nothing to prune: retention days and max records are both 0"))
	}

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := retention.NewPruner(store, retentionCfg).Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s record(s)\n", humanize.Comma(removed))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
