/*
Package sqlite provides the SQLite-backed record store filtered by period domains.

PURPOSE:
  Persists dated records (a label and a decimal amount) and answers the
  filter domains built by the period engine: Search lists the matching
  records, Aggregate counts and sums them.

KEY TABLES:
  records: id, label, category, amount, occurred_on, created_at

FIELDS:
  Domains may only reference the columns in Fields:
  - occurred_on: date, stored as YYYY-MM-DD
  - created_at:  datetime, stored in UTC as YYYY-MM-DD HH:MM:SS
  Both forms sort lexicographically, so the engine's serialized bounds
  compare correctly as TEXT.

AMOUNTS:
  Stored as TEXT and summed with shopspring/decimal in Go, never with SQL
  SUM (which would go through floating point).

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is pinned to a
  single connection, since every new SQLite connection to ":memory:" opens
  a fresh empty database.

USAGE:
  store, err := sqlite.New("./data/periods.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  res, _ := engine.ConstructDomain(ref, "occurred_on", periods.FieldDate, ids, "")
  totals, err := store.Aggregate(ctx, res.Domain)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - domain/sql.go: domain to WHERE clause
  - report: period-over-period totals
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/period-engine/domain"
	"github.com/warp/period-engine/metrics"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var (
	// ErrRecordNotFound is returned when no record has the requested id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateRecord is returned when a record id is already stored.
	ErrDuplicateRecord = errors.New("duplicate record id")

	// ErrInvalidRecord is returned for records missing a label or date.
	ErrInvalidRecord = errors.New("invalid record")
)

// Fields maps the filterable fields to their storage kind ("date" or
// "datetime").
var Fields = map[string]string{
	"occurred_on": "date",
	"created_at":  "datetime",
}

// columns is the domain field allow-list passed to domain.Expr.SQL.
var columns = map[string]string{
	"occurred_on": "occurred_on",
	"created_at":  "created_at",
}

// Record is one dated amount.
type Record struct {
	ID         string
	Label      string
	Category   string
	Amount     decimal.Decimal
	OccurredOn time.Time
	CreatedAt  time.Time
}

// Totals is the count and sum of the records matching a domain.
type Totals struct {
	Count int
	Sum   decimal.Decimal
}

// Store persists records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		occurred_on TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_occurred_on
		ON records(occurred_on);
	CREATE INDEX IF NOT EXISTS idx_records_created_at
		ON records(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORDS
// =============================================================================

// Save inserts a record, assigning an id and creation time when missing.
// It returns the stored record.
func (s *Store) Save(ctx context.Context, r Record) (Record, error) {
	if strings.TrimSpace(r.Label) == "" {
		return Record{}, fmt.Errorf("%w: label is required", ErrInvalidRecord)
	}
	if r.OccurredOn.IsZero() {
		return Record{}, fmt.Errorf("%w: occurred_on is required", ErrInvalidRecord)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)
	y, m, d := r.OccurredOn.Date()
	r.OccurredOn = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.StoreQueriesTotal.WithLabelValues("save").Inc()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, label, category, amount, occurred_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Label,
		r.Category,
		r.Amount.String(),
		r.OccurredOn.Format(dateLayout),
		r.CreatedAt.Format(dateTimeLayout),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return Record{}, ErrDuplicateRecord
		}
		return Record{}, fmt.Errorf("failed to save record: %w", err)
	}
	return r, nil
}

// Get returns a record by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.StoreQueriesTotal.WithLabelValues("get").Inc()

	records, err := s.queryRecords(ctx, selectRecords+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	return &records[0], nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.StoreQueriesTotal.WithLabelValues("list").Inc()

	return s.queryRecords(ctx, selectRecords+" ORDER BY occurred_on DESC, created_at DESC LIMIT ?", limit)
}

// Search returns the records matching expr in date order. An empty
// expression matches every record.
func (s *Store) Search(ctx context.Context, expr domain.Expr) ([]Record, error) {
	where, args, err := expr.SQL(columns)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.StoreQueriesTotal.WithLabelValues("search").Inc()

	return s.queryRecords(ctx, selectRecords+" WHERE "+where+" ORDER BY occurred_on, created_at", args...)
}

// Aggregate counts and sums the records matching expr.
func (s *Store) Aggregate(ctx context.Context, expr domain.Expr) (Totals, error) {
	where, args, err := expr.SQL(columns)
	if err != nil {
		return Totals{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.StoreQueriesTotal.WithLabelValues("aggregate").Inc()

	rows, err := s.db.QueryContext(ctx, "SELECT amount FROM records WHERE "+where, args...)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to aggregate records: %w", err)
	}
	defer rows.Close()

	totals := Totals{Sum: decimal.Zero}
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return Totals{}, fmt.Errorf("failed to scan amount: %w", err)
		}
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return Totals{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		totals.Count++
		totals.Sum = totals.Sum.Add(v)
	}
	return totals, rows.Err()
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM records")
	return err
}

const selectRecords = `SELECT id, label, category, amount, occurred_on, created_at FROM records`

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		r          Record
		amount     string
		occurredOn string
		createdAt  string
	)

	if err := rows.Scan(&r.ID, &r.Label, &r.Category, &amount, &occurredOn, &createdAt); err != nil {
		return r, fmt.Errorf("failed to scan record: %w", err)
	}

	var err error
	if r.Amount, err = decimal.NewFromString(amount); err != nil {
		return r, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	if r.OccurredOn, err = time.Parse(dateLayout, occurredOn); err != nil {
		return r, fmt.Errorf("invalid stored date %q: %w", occurredOn, err)
	}
	if r.CreatedAt, err = time.Parse(dateTimeLayout, createdAt); err != nil {
		return r, fmt.Errorf("invalid stored timestamp %q: %w", createdAt, err)
	}
	return r, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
