package retention

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/history"
)

// PruneObserver is notified of the number of records removed by each run.
// *metrics.Collector satisfies it.
type PruneObserver interface {
	RecordHistoryPrune(removed int64)
}

// deleteBatchSize bounds the IDs bound into one DELETE statement.
const deleteBatchSize = 500

// Pruner enforces retention limits on a history store.
type Pruner struct {
	store     history.Store
	config    config.RetentionConfig
	observer  PruneObserver
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a new retention pruner.
func NewPruner(store history.Store, cfg config.RetentionConfig) *Pruner {
	p := &Pruner{
		store:  store,
		config: cfg,
		logger: slog.Default().With("component", "history.retention"),
		now:    time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// WithObserver sets the observer notified after each prune.
func (p *Pruner) WithObserver(observer PruneObserver) *Pruner {
	p.observer = observer
	return p
}

// Prune deletes records older than the retention period and then the
// oldest records beyond MaxRecords. It returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.Days > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if p.observer != nil {
		p.observer.RecordHistoryPrune(totalDeleted)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no records pruned",
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Info("history pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.Days)

	deleted, err := p.store.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, history.NewRetentionError(p.config.Days, err)
	}
	return deleted, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.store.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	excess := count - int64(p.config.MaxRecords)
	if excess <= 0 {
		return 0, nil
	}

	oldest, err := p.store.Query(ctx, &history.Query{
		Limit:     int(excess),
		Ascending: true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query records: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	// Delete by ID so records sharing the boundary timestamp survive.
	var deleted int64
	for batch := range slices.Chunk(oldest, deleteBatchSize) {
		ids := make([]string, len(batch))
		for i, record := range batch {
			ids[i] = record.ID
		}
		n, err := p.store.Delete(ctx, &history.Query{IDs: ids})
		deleted += n
		if err != nil {
			return deleted, fmt.Errorf("delete failed: %w", err)
		}
	}
	return deleted, nil
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
