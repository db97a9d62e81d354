package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/consistency"
	"github.com/sells-group/finpsych/internal/model"
	"github.com/sells-group/finpsych/internal/quality"
	"github.com/sells-group/finpsych/internal/scorer"
)

// Assessor produces a full assessment for one submission: the scoring
// result, the independent consistency report and the quality badge.
type Assessor struct {
	engine    *scorer.Engine
	validator *consistency.Validator
}

// NewAssessor builds an Assessor over one calibration set.
func NewAssessor(t *calibration.Tables, opts ...scorer.Option) *Assessor {
	return &Assessor{
		engine:    scorer.NewEngine(t, opts...),
		validator: consistency.NewValidator(t),
	}
}

// Engine returns the scoring engine.
func (a *Assessor) Engine() *scorer.Engine { return a.engine }

// Validate runs only the consistency checks.
func (a *Assessor) Validate(responses model.Responses) *model.ValidationResult {
	return a.validator.Validate(responses)
}

// Assess scores and validates a submission. Scoring faults (LCA overflow)
// are returned wrapped; test with eris.Is(err, scorer.ErrLCAOverflow).
func (a *Assessor) Assess(sub model.Submission) (*model.Assessment, error) {
	log := zap.L().With(zap.String("submission_id", sub.ID))

	res, err := a.engine.Score(sub.Responses, sub.Country)
	if err != nil {
		log.Warn("scoring fault", zap.Error(err))
		return nil, eris.Wrapf(err, "pipeline: score submission %s", sub.ID)
	}

	val := a.validator.Validate(sub.Responses)
	level, badge := quality.ForValidation(val)

	log.Debug("assessment complete",
		zap.String("risk_band", string(res.RiskBand)),
		zap.Int("flags", val.FlagCount),
		zap.String("gaming_risk", level.String()),
	)

	return &model.Assessment{
		SubmissionID: sub.ID,
		Scoring:      res,
		Validation:   val,
		GamingRisk:   level,
		Badge:        badge,
	}, nil
}

// Faulted builds the assessment for a submission whose scoring halted: the
// consistency report and badge are still produced, Scoring stays nil.
func (a *Assessor) Faulted(sub model.Submission, fault error) *model.Assessment {
	val := a.validator.Validate(sub.Responses)
	level, badge := quality.ForValidation(val)
	return &model.Assessment{
		SubmissionID: sub.ID,
		Validation:   val,
		GamingRisk:   level,
		Badge:        badge,
		Fault:        fault.Error(),
	}
}
