package consistency

import (
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// penaltyPerFlag is subtracted from 100 for each raised flag.
const penaltyPerFlag = 7

// Validator evaluates the check battery against one calibration set.
type Validator struct {
	tables *calibration.Tables
	checks []Check
}

// NewValidator creates a Validator using the tables' answer vocabularies.
func NewValidator(t *calibration.Tables) *Validator {
	return &Validator{tables: t, checks: Checks()}
}

// Validate runs every check unconditionally and summarizes the flags.
func (v *Validator) Validate(responses model.Responses) *model.ValidationResult {
	a := &answers{t: v.tables, responses: responses}

	flags := make([]model.ConsistencyFlag, 0)
	for _, c := range v.checks {
		if c.eval(a) {
			flags = append(flags, c.Flag())
		}
	}

	n := len(flags)
	tier, rec := Tier(n)
	res := &model.ValidationResult{
		TotalChecks:      len(v.checks),
		FlagCount:        n,
		SeverityLevel:    tier,
		ConsistencyScore: Score(n),
		Flags:            flags,
		Recommendation:   rec,
	}

	if n > 0 {
		ids := make([]string, n)
		for i, f := range flags {
			ids[i] = f.CheckID
		}
		zap.L().Debug("consistency: flags raised",
			zap.Int("flag_count", n),
			zap.Strings("checks", ids),
			zap.String("recommendation", string(rec)),
		)
	}
	return res
}

// Score is the 0-100 consistency score for a flag count.
func Score(flagCount int) int {
	return max(0, 100-penaltyPerFlag*flagCount)
}

// Tier maps a flag count to its severity tier and recommendation.
func Tier(flagCount int) (model.SeverityTier, model.Recommendation) {
	switch {
	case flagCount <= 2:
		return model.TierMinor, model.RecommendProceed
	case flagCount <= 5:
		return model.TierModerate, model.RecommendReview
	default:
		return model.TierSevere, model.RecommendRetake
	}
}
