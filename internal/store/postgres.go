package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/finpsych/internal/db"
	"github.com/sells-group/finpsych/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
	now     func() time.Time
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *db.PoolConfig) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, connString, poolCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close, now: time.Now}, nil
}

// NewPostgresWithPool wraps an existing pool. Close does not close it.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	country    TEXT NOT NULL DEFAULT '',
	responses  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assessments (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	submission_id    TEXT NOT NULL REFERENCES submissions(id),
	model_version    TEXT NOT NULL,
	calibration_hash TEXT NOT NULL,
	risk_band        TEXT NOT NULL,
	flag_count       INTEGER NOT NULL,
	assessment       JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	seq              BIGSERIAL NOT NULL
);

ALTER TABLE assessments ADD COLUMN IF NOT EXISTS seq BIGSERIAL NOT NULL;

CREATE INDEX IF NOT EXISTS idx_submissions_country ON submissions(country);
DROP INDEX IF EXISTS idx_assessments_submission_created;
CREATE INDEX IF NOT EXISTS idx_assessments_submission_latest ON assessments(submission_id, created_at DESC, seq DESC);
CREATE INDEX IF NOT EXISTS idx_assessments_model_version ON assessments(model_version);
`

var submissionUpsert = db.UpsertConfig{
	Table:        "submissions",
	Columns:      []string{"id", "country", "responses", "created_at"},
	ConflictKeys: []string{"id"},
	UpdateCols:   []string{"country", "responses"},
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	sub = prepareSubmission(sub, s.now())

	responsesJSON, err := json.Marshal(sub.Responses)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal responses")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO submissions (id, country, responses, created_at) VALUES ($1, $2, $3, $4)`,
		sub.ID, sub.Country, responsesJSON, sub.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert submission %s", sub.ID)
	}
	return &sub, nil
}

func (s *PostgresStore) ImportSubmissions(ctx context.Context, subs []model.Submission) (int64, error) {
	now := s.now()
	rows := make([][]any, 0, len(subs))
	for _, sub := range subs {
		sub = prepareSubmission(sub, now)
		responsesJSON, err := json.Marshal(sub.Responses)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal responses %s", sub.ID)
		}
		rows = append(rows, []any{sub.ID, sub.Country, responsesJSON, sub.CreatedAt})
	}

	n, err := db.BulkUpsert(ctx, s.pool, submissionUpsert, rows)
	return n, eris.Wrap(err, "postgres: import submissions")
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, country, responses, created_at FROM submissions WHERE id = $1`,
		id,
	)
	sub, err := scanPgSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: submission %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get submission %s", id)
	}
	return sub, nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	query := `SELECT id, country, responses, created_at FROM submissions WHERE 1=1`
	var args []any

	if filter.Country != "" {
		args = append(args, filter.Country)
		query += fmt.Sprintf(` AND country = $%d`, len(args))
	}
	query += ` ORDER BY created_at, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list submissions")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanPgSubmission(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan submission")
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: list submissions iterate")
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *model.Assessment) (*AssessmentRecord, error) {
	rec, err := newAssessmentRecord(a, s.now())
	if err != nil {
		return nil, err
	}

	assessmentJSON, err := json.Marshal(rec.Assessment)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal assessment")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, submission_id, model_version, calibration_hash, risk_band, flag_count, assessment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.SubmissionID, rec.ModelVersion, rec.CalibrationHash,
		string(a.Scoring.RiskBand), flagCount(a), assessmentJSON, rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert assessment for %s", rec.SubmissionID)
	}
	return rec, nil
}

func (s *PostgresStore) GetLatestAssessment(ctx context.Context, submissionID string) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	var assessmentJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, submission_id, model_version, calibration_hash, assessment, created_at
		 FROM assessments WHERE submission_id = $1 ORDER BY created_at DESC, seq DESC LIMIT 1`,
		submissionID,
	).Scan(&rec.ID, &rec.SubmissionID, &rec.ModelVersion, &rec.CalibrationHash, &assessmentJSON, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get latest assessment")
	}
	if err := json.Unmarshal(assessmentJSON, &rec.Assessment); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal assessment")
	}
	return &rec, nil
}

func scanPgSubmission(row pgx.Row) (*model.Submission, error) {
	var sub model.Submission
	var responsesJSON []byte

	if err := row.Scan(&sub.ID, &sub.Country, &responsesJSON, &sub.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responsesJSON, &sub.Responses); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal responses %s", sub.ID)
	}
	return &sub, nil
}
