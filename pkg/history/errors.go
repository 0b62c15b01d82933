package history

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by a store or recorder used after Close.
var ErrClosed = errors.New("history: closed")

// StorageError wraps a failed backend operation, e.g. "sqlite" "query".
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s %s: %v", e.Backend, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// NewStorageError returns a StorageError for backend and operation.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// RecorderError reports a record the recorder could not queue.
type RecorderError struct {
	RecordID string
	Cause    error
}

func (e *RecorderError) Error() string {
	return fmt.Sprintf("history record %s not queued: %v", e.RecordID, e.Cause)
}

func (e *RecorderError) Unwrap() error { return e.Cause }

// NewRecorderError returns a RecorderError for the given record ID.
func NewRecorderError(recordID string, cause error) *RecorderError {
	return &RecorderError{RecordID: recordID, Cause: cause}
}

// RetentionError reports a failed pruning pass.
type RetentionError struct {
	Days  int
	Cause error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("history pruning (%d days): %v", e.Days, e.Cause)
}

func (e *RetentionError) Unwrap() error { return e.Cause }

// NewRetentionError returns a RetentionError for a pruning pass keeping days of history.
func NewRetentionError(days int, cause error) *RetentionError {
	return &RetentionError{Days: days, Cause: cause}
}
