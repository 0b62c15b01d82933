package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecorderConfig contains configuration for the history recorder.
type RecorderConfig struct {
	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int

	// WriteTimeout bounds both enqueueing and a single storage write.
	// Default: 5 seconds
	WriteTimeout time.Duration

	// MaxCodeLength truncates stored generated code. Zero stores it whole.
	// Default: 0
	MaxCodeLength int
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		AsyncBuffer:  256,
		WriteTimeout: 5 * time.Second,
	}
}

// WriteObserver is notified after every storage write.
// *metrics.Collector satisfies it.
type WriteObserver interface {
	RecordHistoryWrite(err error)
}

// Recorder writes history records to a Store in the background so that
// generation never blocks on storage.
type Recorder struct {
	store      Store
	config     *RecorderConfig
	observer   WriteObserver
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
	logger     *slog.Logger
}

// NewRecorder creates a recorder and starts its background writer.
func NewRecorder(store Store, config *RecorderConfig) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultRecorderConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultRecorderConfig().WriteTimeout
	}

	r := &Recorder{
		store:      store,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "history.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// WithObserver sets the observer notified after each write.
func (r *Recorder) WithObserver(observer WriteObserver) *Recorder {
	r.observer = observer
	return r
}

// Record fills in the ID, hash and timestamp of record when missing and
// enqueues it for writing. It returns immediately unless the buffer is full.
func (r *Recorder) Record(record *Record) error {
	Prepare(record)
	if r.config.MaxCodeLength > 0 && len(record.Code) > r.config.MaxCodeLength {
		record.Code = record.Code[:r.config.MaxCodeLength]
	}

	select {
	case <-r.done:
		return NewRecorderError(record.ID, ErrClosed)
	default:
	}

	timer := time.NewTimer(r.config.WriteTimeout)
	defer timer.Stop()

	select {
	case r.recordChan <- record:
		return nil
	case <-timer.C:
		r.logger.Error("history channel full, dropping record",
			"record_id", record.ID,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return NewRecorderError(record.ID, context.DeadlineExceeded)
	case <-r.done:
		return NewRecorderError(record.ID, ErrClosed)
	}
}

// Close stops accepting records, drains the buffer and waits for pending
// writes. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.write(record)

		case <-r.done:
			for {
				select {
				case record := <-r.recordChan:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	err := r.store.Store(ctx, record)
	if r.observer != nil {
		r.observer.RecordHistoryWrite(err)
	}
	if err != nil {
		r.logger.Error("failed to store history record",
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	r.logger.Debug("history recorded",
		"record_id", record.ID,
		"language", record.Language,
		"status", record.Status,
	)
}

// Prepare assigns an ID, an expression hash and a creation time to record
// where they are unset.
func Prepare(record *Record) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.ExpressionHash == "" {
		record.ExpressionHash = HashExpression(record.Expression)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Status == "" {
		record.Status = StatusSuccess
	}
}

// HashExpression returns the hex-encoded SHA-256 of an expression.
func HashExpression(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
