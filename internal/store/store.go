package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultBatchSize is used when Config.BatchSize is not positive.
const DefaultBatchSize = 500

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Metrics counts rows written since the store was created.
type Metrics struct {
	Inserts   int64 // Rows inserted or updated
	Conflicts int64 // Rows left unchanged by ON CONFLICT
	Errors    int64 // Failed batches
	Batches   int64 // Successful batches
}

// Store writes records in chunked batches.
type Store struct {
	db        DB
	batchSize int
	logger    *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// New creates a Store over db.
func New(db DB, batchSize int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Store{db: db, batchSize: batchSize, logger: logger}
}

// Stats returns current metrics.
func (s *Store) Stats() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Result is the outcome of one Save call.
type Result struct {
	Rows      int
	Conflicts int
	Batches   int
}

// write sends rows to the server through query, batchSize rows at a time.
// It stops at the first failing batch; earlier batches stay committed.
func (s *Store) write(ctx context.Context, table, query string, rows [][]any) (Result, error) {
	var res Result
	start := time.Now()

	for lo := 0; lo < len(rows); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(rows))
		chunk := rows[lo:hi]

		conflicts, err := s.sendBatch(ctx, query, chunk)
		if err != nil {
			s.mu.Lock()
			s.metrics.Errors++
			s.mu.Unlock()
			return res, fmt.Errorf("write %s rows %d-%d: %w", table, lo, hi-1, err)
		}

		res.Rows += len(chunk)
		res.Conflicts += conflicts
		res.Batches++

		s.mu.Lock()
		s.metrics.Inserts += int64(len(chunk) - conflicts)
		s.metrics.Conflicts += int64(conflicts)
		s.metrics.Batches++
		s.mu.Unlock()
	}

	s.logger.Debug("wrote rows",
		"table", table,
		"count", res.Rows,
		"conflicts", res.Conflicts,
		"batches", res.Batches,
		"duration", time.Since(start),
	)
	return res, nil
}

// sendBatch queues one statement per row and counts unaffected rows.
func (s *Store) sendBatch(ctx context.Context, query string, rows [][]any) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, args := range rows {
		batch.Queue(query, args...)
	}

	results := s.db.SendBatch(ctx, batch)
	defer func() {
		if cerr := results.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
