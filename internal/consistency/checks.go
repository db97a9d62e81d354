// Package consistency runs the cross-question plausibility checks over a raw
// response map. Every check is total: missing, N/A or unrecognized answers
// simply fail to trigger it.
package consistency

import (
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// Check is one plausibility predicate.
type Check struct {
	ID          string
	Name        string
	Description string
	Severity    model.Severity
	Questions   []string
	eval        func(a *answers) bool
}

// Flag converts the check into the flag it raises.
func (c Check) Flag() model.ConsistencyFlag {
	return model.ConsistencyFlag{
		CheckID:     c.ID,
		Name:        c.Name,
		Description: c.Description,
		Severity:    c.Severity,
		Questions:   append([]string(nil), c.Questions...),
	}
}

// Likert thresholds on the raw (not reverse-coded) 1-5 scale.
const (
	likertNever  = 1
	likertAlways = 5
	likertOften  = 4

	// maxTraitSD is the largest standard deviation tolerated across items
	// measuring one trait.
	maxTraitSD = 1.5
	// minTraitItems is how many recognized items a variance check needs.
	minTraitItems = 3
	// duplicateGap is the smallest absolute difference that counts as a
	// duplicate-measure mismatch.
	duplicateGap = 3
)

// Checks returns the full battery in evaluation order.
func Checks() []Check {
	return []Check{
		{
			ID: "C01", Name: "saver_without_savings", Severity: model.SeverityHigh,
			Description: "Reports always saving but has no emergency savings",
			Questions:   []string{"q5", "q37"},
			eval: func(a *answers) bool {
				return a.likertIs("q5", likertAlways) && a.ordinalIs("q37", 1)
			},
		},
		{
			ID: "C02", Name: "on_time_payer_missing_bills", Severity: model.SeverityHigh,
			Description: "Reports always paying on time but often misses two or more bill types",
			Questions:   []string{"q1", "q4"},
			eval: func(a *answers) bool {
				return a.likertIs("q1", likertAlways) && a.likertAtLeast("q4", likertOften)
			},
		},
		{
			ID: "C03", Name: "impulsive_yet_controlled", Severity: model.SeverityMedium,
			Description: "Reports acting on impulse while also controlling spending urges",
			Questions:   []string{"q10", "q8"},
			eval: func(a *answers) bool {
				return a.likertAtLeast("q10", likertOften) && a.likertAtLeast("q8", likertOften)
			},
		},
		traitVariance("C04", "conscientiousness", "q12", "q13", "q14", "q15"),
		traitVariance("C05", "openness", "q24", "q25", "q26", "q27"),
		traitVariance("C06", "extraversion", "q28", "q29", "q30", "q31"),
		traitVariance("C07", "agreeableness", "q20", "q21", "q22", "q23"),
		traitVariance("C08", "emotional_stability", "q16", "q17", "q18", "q19"),
		traitVariance("C09", "impulse_control", "q8", "q9", "q10", "q11"),
		duplicateMismatch("C10", "q2", "gd1"),
		duplicateMismatch("C11", "q6", "gd2"),
		duplicateMismatch("C12", "q9", "gd3"),
		{
			ID: "C13", Name: "locus_mixed_pattern", Severity: model.SeverityLow,
			Description: "Locus of control answers are neither clearly internal nor external",
			Questions:   []string{"q32", "q33", "q34", "q35", "q36"},
			eval: func(a *answers) bool {
				n := a.internalLocusCount("q32", "q33", "q34", "q35", "q36")
				return n == 2 || n == 3
			},
		},
		{
			ID: "C14", Name: "planner_without_tracking", Severity: model.SeverityMedium,
			Description: "Reports always budgeting but never tracking spending",
			Questions:   []string{"q52", "q53"},
			eval: func(a *answers) bool {
				return a.likertIs("q52", likertAlways) && a.likertIs("q53", likertNever)
			},
		},
		{
			ID: "C15", Name: "reserves_without_coverage", Severity: model.SeverityMedium,
			Description: "Reports more than six months of savings but very unlikely to cover an emergency",
			Questions:   []string{"q37", "q38"},
			eval: func(a *answers) bool {
				return a.ordinalIs("q37", 5) && a.likelihoodIs("q38", 1)
			},
		},
		{
			ID: "C16", Name: "support_without_network", Severity: model.SeverityLow,
			Description: "Reports nobody to turn to but very likely to receive help",
			Questions:   []string{"q40", "q41"},
			eval: func(a *answers) bool {
				return a.ordinalIs("q40", 1) && a.likelihoodIs("q41", 5)
			},
		},
	}
}

func traitVariance(id, trait string, questions ...string) Check {
	return Check{
		ID:          id,
		Name:        trait + "_variance",
		Description: "Answers measuring " + strings.ReplaceAll(trait, "_", " ") + " are internally inconsistent",
		Severity:    model.SeverityMedium,
		Questions:   questions,
		eval: func(a *answers) bool {
			vals := a.coded(questions...)
			if len(vals) < minTraitItems {
				return false
			}
			return populationSD(vals) > maxTraitSD
		},
	}
}

func duplicateMismatch(id, question, duplicate string) Check {
	return Check{
		ID:          id,
		Name:        "duplicate_mismatch_" + question,
		Description: "Answer to " + question + " disagrees with its repeated item " + duplicate,
		Severity:    model.SeverityMedium,
		Questions:   []string{question, duplicate},
		eval: func(a *answers) bool {
			x, ok1 := a.likert(question)
			y, ok2 := a.likert(duplicate)
			return ok1 && ok2 && math.Abs(x-y) >= duplicateGap
		},
	}
}

// answers wraps a response map with the calibration vocabularies.
type answers struct {
	t         *calibration.Tables
	responses model.Responses
}

func (a *answers) text(id string) (string, bool) {
	v, ok := a.responses.Answer(id)
	if !ok || v == "" || model.IsNotApplicable(v) {
		return "", false
	}
	return v, true
}

// likert returns the raw scale value, without reverse coding.
func (a *answers) likert(id string) (float64, bool) {
	v, ok := a.text(id)
	if !ok {
		return 0, false
	}
	return a.t.LikertScale.Lookup(v)
}

func (a *answers) likertIs(id string, want float64) bool {
	v, ok := a.likert(id)
	return ok && v == want
}

func (a *answers) likertAtLeast(id string, floor float64) bool {
	v, ok := a.likert(id)
	return ok && v >= floor
}

func (a *answers) likelihoodIs(id string, want float64) bool {
	v, ok := a.text(id)
	if !ok {
		return false
	}
	got, ok := a.t.LikelihoodScale.Lookup(v)
	return ok && got == want
}

// ordinalIs matches the months-saved and people-count ordinal questions.
func (a *answers) ordinalIs(id string, want float64) bool {
	v, ok := a.text(id)
	if !ok {
		return false
	}
	var scale calibration.Vocabulary
	switch id {
	case a.t.EmergencyOrdinalQuestion:
		scale = a.t.EmergencyMonths
	case a.t.SocialOrdinalQuestion:
		scale = a.t.SocialPeopleCount
	default:
		return false
	}
	got, ok := scale.Lookup(v)
	return ok && got == want
}

// coded returns the recognized Likert values with reverse-scored items flipped.
func (a *answers) coded(ids ...string) []float64 {
	out := make([]float64, 0, len(ids))
	for _, id := range ids {
		v, ok := a.likert(id)
		if !ok {
			continue
		}
		if a.t.IsReversed(id) {
			v = 6 - v
		}
		out = append(out, v)
	}
	return out
}

func (a *answers) internalLocusCount(ids ...string) int {
	fold := cases.Fold()
	n := 0
	for _, id := range ids {
		v, ok := a.text(id)
		if !ok {
			continue
		}
		folded := fold.String(v)
		for _, keywords := range a.t.InternalLocusKeywords {
			if matchesAny(folded, keywords, fold) {
				n++
				break
			}
		}
	}
	return n
}

func matchesAny(folded string, keywords []string, fold cases.Caser) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(folded, fold.String(kw)) {
			return true
		}
	}
	return false
}

func populationSD(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var ss float64
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(vals)))
}
