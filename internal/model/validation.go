package model

import (
	"github.com/rotisserie/eris"
)

// Severity grades a single consistency flag.
type Severity string

// Flag severities.
const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// ConsistencyFlag is one raised plausibility violation.
type ConsistencyFlag struct {
	CheckID     string   `json:"check_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Questions   []string `json:"questions"`
}

// SeverityTier summarizes how inconsistent a submission is overall.
type SeverityTier string

// Severity tiers.
const (
	TierMinor    SeverityTier = "MINOR"
	TierModerate SeverityTier = "MODERATE"
	TierSevere   SeverityTier = "SEVERE"
)

// Recommendation is the advisory action for a reviewed submission.
type Recommendation string

// Recommendations.
const (
	RecommendProceed Recommendation = "PROCEED"
	RecommendReview  Recommendation = "REVIEW"
	RecommendRetake  Recommendation = "RETAKE"
)

// ValidationResult is the consistency report for one submission.
type ValidationResult struct {
	TotalChecks      int               `json:"total_checks"`
	FlagCount        int               `json:"flag_count"`
	SeverityLevel    SeverityTier      `json:"severity_level"`
	ConsistencyScore int               `json:"consistency_score"`
	Flags            []ConsistencyFlag `json:"flags"`
	Recommendation   Recommendation    `json:"recommendation"`
}

// GamingRiskLevel is the ordinal response-quality risk derived from the
// number of consistency flags.
type GamingRiskLevel int

// Gaming risk levels, lowest risk first.
const (
	GamingMinimal GamingRiskLevel = iota
	GamingLow
	GamingModerate
	GamingHigh
	GamingSevere
)

var gamingNames = [...]string{"MINIMAL", "LOW", "MODERATE", "HIGH", "SEVERE"}

func (l GamingRiskLevel) String() string {
	if l < GamingMinimal || l > GamingSevere {
		return "UNKNOWN"
	}
	return gamingNames[l]
}

// MarshalText encodes the level by name.
func (l GamingRiskLevel) MarshalText() ([]byte, error) {
	if l < GamingMinimal || l > GamingSevere {
		return nil, eris.Errorf("model: invalid gaming risk level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *GamingRiskLevel) UnmarshalText(text []byte) error {
	for i, name := range gamingNames {
		if string(text) == name {
			*l = GamingRiskLevel(i)
			return nil
		}
	}
	return eris.Errorf("model: unknown gaming risk level %q", string(text))
}

// QualityBadge is the user-facing data quality label.
type QualityBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Assessment bundles everything produced for one submission.
type Assessment struct {
	SubmissionID string            `json:"submission_id,omitempty"`
	Scoring      *ScoringResult    `json:"scoring"`
	Validation   *ValidationResult `json:"validation"`
	GamingRisk   GamingRiskLevel   `json:"gaming_risk"`
	Badge        QualityBadge      `json:"badge"`

	// Fault is set when scoring halted for the submission; Scoring is nil.
	Fault string `json:"fault,omitempty"`
}
