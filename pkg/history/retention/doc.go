// Package retention enforces history retention limits.
//
// A Pruner removes records older than the configured number of days and then
// trims the store to at most MaxRecords, deleting the oldest first. A
// Scheduler runs the Pruner on a standard five-field cron schedule:
//
//	pruner := retention.NewPruner(store, cfg.History.Retention)
//	if err := pruner.Start(ctx); err != nil {
//		return err
//	}
//	defer pruner.Stop()
package retention
