package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nlu/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ErrLogNotFound is returned when no log exists for a request ID
var ErrLogNotFound = errors.New("nlu log not found")

// schema creates the request log table. intent_scores holds one score per
// intent label in classifier declaration order.
const schema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS nlu_logs (
	id                 UUID PRIMARY KEY,
	request_id         TEXT NOT NULL UNIQUE,
	tenant_id          TEXT NOT NULL,
	locale             TEXT NOT NULL,
	utterance          TEXT NOT NULL,
	intent             TEXT NOT NULL,
	confidence         DOUBLE PRECISION NOT NULL,
	intent_scores      vector(5),
	entities           JSONB NOT NULL DEFAULT '[]',
	processing_time_ms INTEGER NOT NULL,
	correct_intent     TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_nlu_logs_tenant_created ON nlu_logs (tenant_id, created_at DESC);
`

// PostgresRepository stores NLU request logs
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the nlu_logs table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate nlu_logs: %w", err)
	}
	return nil
}

// LogRequest stores one NLU request. A repeated request ID overwrites the
// previous classification but keeps any feedback already recorded.
func (r *PostgresRepository) LogRequest(ctx context.Context, entry *model.NLULog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO nlu_logs (id, request_id, tenant_id, locale, utterance, intent, confidence,
			intent_scores, entities, processing_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (request_id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			locale = EXCLUDED.locale,
			utterance = EXCLUDED.utterance,
			intent = EXCLUDED.intent,
			confidence = EXCLUDED.confidence,
			intent_scores = EXCLUDED.intent_scores,
			entities = EXCLUDED.entities,
			processing_time_ms = EXCLUDED.processing_time_ms
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.RequestID,
		entry.TenantID,
		entry.Locale,
		entry.Utterance,
		entry.Intent,
		entry.Confidence,
		pgvector.NewVector(entry.IntentScores),
		entry.Entities,
		entry.ProcessingTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log nlu request: %w", err)
	}
	return nil
}

// logRow adds the vector column that model.NLULog keeps as a plain slice
type logRow struct {
	model.NLULog
	Scores pgvector.Vector `db:"intent_scores"`
}

// GetLog retrieves the log for a request ID
func (r *PostgresRepository) GetLog(ctx context.Context, requestID string) (*model.NLULog, error) {
	var row logRow
	query := `
		SELECT id, request_id, tenant_id, locale, utterance, intent, confidence,
			intent_scores, entities, processing_time_ms, correct_intent, created_at
		FROM nlu_logs
		WHERE request_id = $1
	`
	err := r.db.GetContext(ctx, &row, query, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to get nlu log: %w", err)
	}

	entry := row.NLULog
	entry.IntentScores = row.Scores.Slice()
	return &entry, nil
}

// RecordFeedback stores the intent a reviewer says was correct
func (r *PostgresRepository) RecordFeedback(ctx context.Context, requestID, correctIntent string) error {
	query := `UPDATE nlu_logs SET correct_intent = $2 WHERE request_id = $1`
	res, err := r.db.ExecContext(ctx, query, requestID, correctIntent)
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	if n == 0 {
		return ErrLogNotFound
	}
	return nil
}
