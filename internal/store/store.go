// Package store persists submissions and their assessments. The scoring
// engine never imports it; the CLI uses it to feed recompute and import.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/finpsych/internal/model"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = eris.New("store: not found")

// SubmissionFilter specifies criteria for listing submissions.
type SubmissionFilter struct {
	Country string `json:"country,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// AssessmentRecord is a stored assessment with its bookkeeping columns.
type AssessmentRecord struct {
	ID              string           `json:"id"`
	SubmissionID    string           `json:"submission_id"`
	ModelVersion    string           `json:"model_version"`
	CalibrationHash string           `json:"calibration_hash"`
	Assessment      model.Assessment `json:"assessment"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Store defines the persistence interface for submissions and assessments.
type Store interface {
	// Submissions
	CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error)
	ImportSubmissions(ctx context.Context, subs []model.Submission) (int64, error)
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)

	// Assessments
	SaveAssessment(ctx context.Context, a *model.Assessment) (*AssessmentRecord, error)
	GetLatestAssessment(ctx context.Context, submissionID string) (*AssessmentRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100

func newID() string { return uuid.New().String() }

// prepareSubmission assigns an id and creation time when missing.
func prepareSubmission(sub model.Submission, now time.Time) model.Submission {
	if sub.ID == "" {
		sub.ID = newID()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.CreatedAt = sub.CreatedAt.UTC()
	if sub.Responses == nil {
		sub.Responses = model.Responses{}
	}
	return sub
}

func newAssessmentRecord(a *model.Assessment, now time.Time) (*AssessmentRecord, error) {
	if a == nil || a.Scoring == nil {
		return nil, eris.New("store: assessment has no scoring result")
	}
	if a.SubmissionID == "" {
		return nil, eris.New("store: assessment has no submission id")
	}
	return &AssessmentRecord{
		ID:              newID(),
		SubmissionID:    a.SubmissionID,
		ModelVersion:    a.Scoring.ModelVersion,
		CalibrationHash: a.Scoring.CalibrationHash,
		Assessment:      *a,
		CreatedAt:       now.UTC(),
	}, nil
}
