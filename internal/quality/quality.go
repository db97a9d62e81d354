// Package quality classifies gaming risk from consistency flags and maps it
// to the user-facing data quality badge.
package quality

import "github.com/sells-group/finpsych/internal/model"

// LevelForFlags maps a consistency flag count to a gaming risk level.
func LevelForFlags(flagCount int) model.GamingRiskLevel {
	switch {
	case flagCount <= 0:
		return model.GamingMinimal
	case flagCount <= 2:
		return model.GamingLow
	case flagCount <= 5:
		return model.GamingModerate
	case flagCount <= 8:
		return model.GamingHigh
	default:
		return model.GamingSevere
	}
}

// Legacy quality score cut-offs. Each sits halfway between the consistency
// scores on either side of a flag-count band edge, so a score derived from
// a flag count always lands in the same level as the count itself.
const (
	minimalMinScore  = 96.5
	lowMinScore      = 82.5
	moderateMinScore = 61.5
	highMinScore     = 40.5
)

// LevelForScore approximates the gaming risk level from a 0-100 quality
// score, for stored records that lack a ValidationResult.
func LevelForScore(score float64) model.GamingRiskLevel {
	switch {
	case score >= minimalMinScore:
		return model.GamingMinimal
	case score >= lowMinScore:
		return model.GamingLow
	case score >= moderateMinScore:
		return model.GamingModerate
	case score >= highMinScore:
		return model.GamingHigh
	default:
		return model.GamingSevere
	}
}

var badges = map[model.GamingRiskLevel]model.QualityBadge{
	model.GamingMinimal:  {Label: "EXCELLENT", Color: "green"},
	model.GamingLow:      {Label: "GOOD", Color: "lightgreen"},
	model.GamingModerate: {Label: "MODERATE", Color: "yellow"},
	model.GamingHigh:     {Label: "FAIR", Color: "orange"},
	model.GamingSevere:   {Label: "POOR", Color: "red"},
}

// BadgeFor returns the badge for a level. Out-of-range levels get POOR.
func BadgeFor(level model.GamingRiskLevel) model.QualityBadge {
	if b, ok := badges[level]; ok {
		return b
	}
	return badges[model.GamingSevere]
}

// ForValidation derives level and badge from a full consistency report.
func ForValidation(v *model.ValidationResult) (model.GamingRiskLevel, model.QualityBadge) {
	level := LevelForFlags(v.FlagCount)
	return level, BadgeFor(level)
}

// ForScore derives level and badge through the legacy score path.
func ForScore(score float64) (model.GamingRiskLevel, model.QualityBadge) {
	level := LevelForScore(score)
	return level, BadgeFor(level)
}
