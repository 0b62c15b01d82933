package storage

import (
	"context"
	"sort"
	"sync"

	"mathgen-hq/mathgen/pkg/history"
)

// MemoryStorage implements history.Store using an in-memory map.
type MemoryStorage struct {
	records map[string]*history.Record
	mu      sync.RWMutex
	closed  bool
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*history.Record),
	}
}

// Store persists a copy of record.
func (s *MemoryStorage) Store(ctx context.Context, record *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.NewStorageError("memory", "store", history.ErrClosed)
	}

	s.records[record.ID] = copyRecord(record)
	return nil
}

// Query retrieves records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.NewStorageError("memory", "query", history.ErrClosed)
	}
	if query == nil {
		query = &history.Query{}
	}

	results := []*history.Record{}
	for _, record := range s.records {
		if query.Matches(record) {
			results = append(results, copyRecord(record))
		}
	}

	// Same order as the sqlite backend: created_at, then id.
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !query.Ascending {
			a, b = b, a
		}
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*history.Record{}, nil
	}
	limit := query.Limit
	if limit <= 0 {
		limit = history.DefaultQueryLimit
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}

	return results[start:end], nil
}

// Count returns the number of records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, history.NewStorageError("memory", "count", history.ErrClosed)
	}

	var count int64
	for _, record := range s.records {
		if query.Matches(record) {
			count++
		}
	}
	return count, nil
}

// Delete removes records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, history.NewStorageError("memory", "delete", history.ErrClosed)
	}

	var deleted int64
	for id, record := range s.records {
		if query.Matches(record) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Ping reports an error once the storage has been closed.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return history.NewStorageError("memory", "ping", history.ErrClosed)
	}
	return nil
}

// Close releases all records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*history.Record)
	s.closed = true
	return nil
}

func copyRecord(record *history.Record) *history.Record {
	c := *record
	if record.Variables != nil {
		c.Variables = append([]string(nil), record.Variables...)
	}
	return &c
}
