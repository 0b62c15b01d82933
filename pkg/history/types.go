package history

import (
	"context"
	"slices"
	"time"
)

// Status is the outcome of a generation.
type Status string

const (
	// StatusSuccess means code was generated.
	StatusSuccess Status = "success"

	// StatusError means lexing, parsing, validation or printing failed.
	StatusError Status = "error"
)

// Record is a single generation history entry.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`

	// Input
	Expression     string   `json:"expression" yaml:"expression"`
	ExpressionHash string   `json:"expression_hash" yaml:"expression_hash"`
	Language       string   `json:"language" yaml:"language"`
	Variables      []string `json:"variables,omitempty" yaml:"variables,omitempty"`

	// Output
	Code   string `json:"code,omitempty" yaml:"code,omitempty"`
	Status Status `json:"status" yaml:"status"`
	Nodes  int    `json:"nodes" yaml:"nodes"`

	// Failure details, empty on success
	ErrorCode    string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// Timing
	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Query filters and paginates history records.
type Query struct {
	// Time range
	Since *time.Time `json:"since,omitempty"` // Inclusive start time
	Until *time.Time `json:"until,omitempty"` // Inclusive end time

	// Filters
	Language string `json:"language,omitempty"`
	Status   Status `json:"status,omitempty"`

	// IDs restricts the query to these records when non-empty.
	IDs []string `json:"ids,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return, 0 uses the backend default
	Offset int `json:"offset,omitempty"` // Skip N records

	// Ascending returns the oldest records first. The default is newest first.
	Ascending bool `json:"ascending,omitempty"`
}

// DefaultQueryLimit is the page size used when Query.Limit is zero.
const DefaultQueryLimit = 100

// Store defines the interface for history storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters, sorted by
	// CreatedAt. Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	// Pagination fields are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns how
	// many were removed. Pagination fields are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}

// Matches reports whether the record satisfies the query's filters.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Since != nil && r.CreatedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && r.CreatedAt.After(*q.Until) {
		return false
	}
	if q.Language != "" && r.Language != q.Language {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if len(q.IDs) > 0 && !slices.Contains(q.IDs, r.ID) {
		return false
	}
	return true
}
