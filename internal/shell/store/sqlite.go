package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/planforge/planforge/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Plan Operations
// =============================================================================

// planRow represents a plan row in the database.
type planRow struct {
	ID          string  `db:"id"`
	Kind        string  `db:"kind"`
	Application string  `db:"application"`
	Cluster     string  `db:"cluster"`
	Region      string  `db:"region"`
	Account     string  `db:"account"`
	StageCount  int     `db:"stage_count"`
	Degraded    bool    `db:"degraded"`
	Request     *string `db:"request"`
	Plan        string  `db:"plan"`
	CreatedAt   string  `db:"created_at"`
}

func (s *SQLiteStore) SavePlan(ctx context.Context, record *PlanRecord) error {
	planJSON, err := json.Marshal(record.Plan)
	if err != nil {
		return NewStoreError("SavePlan", record.ID, "failed to serialize plan", ErrInvalidData)
	}

	var requestJSON *string
	if record.Request != nil {
		b, err := json.Marshal(record.Request)
		if err != nil {
			return NewStoreError("SavePlan", record.ID, "failed to serialize request", ErrInvalidData)
		}
		str := string(b)
		requestJSON = &str
	}

	query := `
		INSERT INTO plans (
			id, kind, application, cluster, region, account,
			stage_count, degraded, request, plan, created_at
		) VALUES (
			:id, :kind, :application, :cluster, :region, :account,
			:stage_count, :degraded, :request, :plan, :created_at
		)`

	row := map[string]any{
		"id":          record.ID,
		"kind":        string(record.Kind),
		"application": record.Application,
		"cluster":     record.Cluster,
		"region":      record.Region,
		"account":     record.Account,
		"stage_count": record.StageCount,
		"degraded":    record.Degraded,
		"request":     requestJSON,
		"plan":        string(planJSON),
		"created_at":  record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return NewStoreError("SavePlan", record.ID, "duplicate plan id", ErrDuplicateID)
		}
		return NewStoreError("SavePlan", record.ID, err.Error(), err)
	}

	return nil
}

func (s *SQLiteStore) GetPlan(ctx context.Context, id string) (*PlanRecord, error) {
	query := `SELECT * FROM plans WHERE id = ?`

	var row planRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPlan", id, "plan not found", ErrNotFound)
		}
		return nil, NewStoreError("GetPlan", id, err.Error(), err)
	}

	return rowToRecord(&row)
}

func (s *SQLiteStore) ListPlans(ctx context.Context, opts ListOptions) ([]PlanRecord, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListOptions().Limit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	query := `SELECT * FROM plans ORDER BY created_at DESC LIMIT ? OFFSET ?`

	var rows []planRow
	if err := s.db.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListPlans", "", err.Error(), err)
	}

	records := make([]PlanRecord, 0, len(rows))
	for i := range rows {
		rec, err := rowToRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, nil
}

// rowToRecord deserializes a database row into a PlanRecord.
func rowToRecord(row *planRow) (*PlanRecord, error) {
	record := &PlanRecord{
		ID:          row.ID,
		Kind:        domain.PlanKind(row.Kind),
		Application: row.Application,
		Cluster:     row.Cluster,
		Region:      row.Region,
		Account:     row.Account,
		StageCount:  row.StageCount,
		Degraded:    row.Degraded,
	}

	if err := json.Unmarshal([]byte(row.Plan), &record.Plan); err != nil {
		return nil, NewStoreError("rowToRecord", row.ID, "failed to deserialize plan", ErrInvalidData)
	}

	if row.Request != nil {
		var req domain.RolloutRequest
		if err := json.Unmarshal([]byte(*row.Request), &req); err != nil {
			return nil, NewStoreError("rowToRecord", row.ID, "failed to deserialize request", ErrInvalidData)
		}
		record.Request = &req
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToRecord", row.ID, "failed to parse created_at", ErrInvalidData)
	}
	record.CreatedAt = createdAt

	return record, nil
}
