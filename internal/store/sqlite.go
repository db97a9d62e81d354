package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/finpsych/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Pragmas are per connection; one connection also serializes writers.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id         TEXT PRIMARY KEY,
	country    TEXT NOT NULL DEFAULT '',
	responses  TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assessments (
	id               TEXT PRIMARY KEY,
	submission_id    TEXT NOT NULL REFERENCES submissions(id),
	model_version    TEXT NOT NULL,
	calibration_hash TEXT NOT NULL,
	risk_band        TEXT NOT NULL,
	flag_count       INTEGER NOT NULL,
	assessment       TEXT NOT NULL,
	created_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_submissions_country ON submissions(country);
CREATE INDEX IF NOT EXISTS idx_assessments_submission_id ON assessments(submission_id);
CREATE INDEX IF NOT EXISTS idx_assessments_model_version ON assessments(model_version);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	sub = prepareSubmission(sub, s.now())

	responsesJSON, err := json.Marshal(sub.Responses)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal responses")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, country, responses, created_at) VALUES (?, ?, ?, ?)`,
		sub.ID, sub.Country, string(responsesJSON), sub.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert submission %s", sub.ID)
	}
	return &sub, nil
}

func (s *SQLiteStore) ImportSubmissions(ctx context.Context, subs []model.Submission) (int64, error) {
	if len(subs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO submissions (id, country, responses, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET country = excluded.country, responses = excluded.responses`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close() //nolint:errcheck

	now := s.now()
	var n int64
	for _, sub := range subs {
		sub = prepareSubmission(sub, now)
		responsesJSON, err := json.Marshal(sub.Responses)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal responses %s", sub.ID)
		}
		if _, err := stmt.ExecContext(ctx, sub.ID, sub.Country, string(responsesJSON), sub.CreatedAt); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import submission %s", sub.ID)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return n, nil
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, country, responses, created_at FROM submissions WHERE id = ?`,
		id,
	)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: submission %s", id)
	}
	return sub, err
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	query := `SELECT id, country, responses, created_at FROM submissions WHERE 1=1`
	var args []any

	if filter.Country != "" {
		query += ` AND country = ?`
		args = append(args, filter.Country)
	}
	query += ` ORDER BY created_at, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list submissions")
	}
	defer rows.Close() //nolint:errcheck

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: list submissions iterate")
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *model.Assessment) (*AssessmentRecord, error) {
	rec, err := newAssessmentRecord(a, s.now())
	if err != nil {
		return nil, err
	}

	assessmentJSON, err := json.Marshal(rec.Assessment)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal assessment")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, submission_id, model_version, calibration_hash, risk_band, flag_count, assessment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SubmissionID, rec.ModelVersion, rec.CalibrationHash,
		string(a.Scoring.RiskBand), flagCount(a), string(assessmentJSON), rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert assessment for %s", rec.SubmissionID)
	}
	return rec, nil
}

func (s *SQLiteStore) GetLatestAssessment(ctx context.Context, submissionID string) (*AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, submission_id, model_version, calibration_hash, assessment, created_at
		 FROM assessments WHERE submission_id = ? ORDER BY rowid DESC LIMIT 1`,
		submissionID,
	)

	var rec AssessmentRecord
	var assessmentJSON string
	err := row.Scan(&rec.ID, &rec.SubmissionID, &rec.ModelVersion, &rec.CalibrationHash, &assessmentJSON, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get latest assessment")
	}
	if err := json.Unmarshal([]byte(assessmentJSON), &rec.Assessment); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal assessment")
	}
	return &rec, nil
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanSubmission(row scannable) (*model.Submission, error) {
	var sub model.Submission
	var responsesJSON string

	err := row.Scan(&sub.ID, &sub.Country, &responsesJSON, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan submission")
	}
	if err := json.Unmarshal([]byte(responsesJSON), &sub.Responses); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal responses %s", sub.ID)
	}
	return &sub, nil
}

func flagCount(a *model.Assessment) int {
	if a.Validation == nil {
		return 0
	}
	return a.Validation.FlagCount
}
