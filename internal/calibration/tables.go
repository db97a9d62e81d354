// Package calibration holds the versioned lookup tables that drive scoring:
// question mappings, answer vocabularies, population norms, category weights,
// country norms and risk thresholds. Tables are built once per process and
// passed explicitly to the scoring functions; nothing in here is mutated after
// load.
package calibration

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/finpsych/internal/model"
)

// Norm is a mean/standard deviation pair.
type Norm struct {
	Mean float64 `yaml:"mean" json:"mean"`
	Std  float64 `yaml:"std" json:"std"`
}

// RiskThreshold maps a minimum percentile to a band. Thresholds are scanned
// in order and the first match wins, so they must be sorted descending.
type RiskThreshold struct {
	Band          model.RiskBand `yaml:"band" json:"band"`
	MinPercentile float64        `yaml:"min_percentile" json:"min_percentile"`
}

// CrisisRanking configures the crisis-response ranking question.
type CrisisRanking struct {
	Items        []string `yaml:"items" json:"items"`
	Lender       string   `yaml:"lender" json:"lender"`
	Skip         string   `yaml:"skip" json:"skip"`
	Base         float64  `yaml:"base" json:"base"`
	LenderWeight float64  `yaml:"lender_weight" json:"lender_weight"`
	SkipWeight   float64  `yaml:"skip_weight" json:"skip_weight"`
}

// Vocabulary maps answer labels to points.
type Vocabulary map[string]float64

// Lookup matches the answer exactly, then case-insensitively.
func (v Vocabulary) Lookup(answer string) (float64, bool) {
	if p, ok := v[answer]; ok {
		return p, true
	}
	folded := cases.Fold().String(answer)
	for label, p := range v {
		if cases.Fold().String(label) == folded {
			return p, true
		}
	}
	return 0, false
}

// Tables is one immutable calibration set.
type Tables struct {
	ModelVersion string `yaml:"model_version" json:"model_version"`

	QuestionConstructs map[string]string `yaml:"question_constructs" json:"question_constructs"`
	ReverseScored      []string          `yaml:"reverse_scored" json:"reverse_scored"`

	LikertScale     Vocabulary `yaml:"likert_scale" json:"likert_scale"`
	LikertDefault   float64    `yaml:"likert_default" json:"likert_default"`
	LikelihoodScale Vocabulary `yaml:"likelihood_scale" json:"likelihood_scale"`

	EmergencyOrdinalQuestion string     `yaml:"emergency_ordinal_question" json:"emergency_ordinal_question"`
	EmergencyMonths          Vocabulary `yaml:"emergency_months" json:"emergency_months"`

	SocialOrdinalQuestion string     `yaml:"social_ordinal_question" json:"social_ordinal_question"`
	SocialPeopleCount     Vocabulary `yaml:"social_people_count" json:"social_people_count"`

	InternalLocusStatements []string   `yaml:"internal_locus_statements" json:"internal_locus_statements"`
	InternalLocusKeywords   [][]string `yaml:"internal_locus_keywords" json:"internal_locus_keywords"`

	Crisis CrisisRanking `yaml:"crisis" json:"crisis"`

	CognitiveReflectionAnswers map[string]float64 `yaml:"cognitive_reflection_answers" json:"cognitive_reflection_answers"`
	DelayedRewardOptions       map[string]string  `yaml:"delayed_reward_options" json:"delayed_reward_options"`
	NumeracyAnswers            map[string]string  `yaml:"numeracy_answers" json:"numeracy_answers"`

	LCAPoints    map[string]map[string]float64 `yaml:"lca_points" json:"lca_points"`
	LCAMaxRawSum float64                       `yaml:"lca_max_raw_sum" json:"lca_max_raw_sum"`

	PopulationNorms map[string]Norm `yaml:"population_norms" json:"population_norms"`
	DefaultNorm     Norm            `yaml:"default_norm" json:"default_norm"`

	Categories      map[model.Category][]string `yaml:"categories" json:"categories"`
	CategoryWeights map[model.Category]float64  `yaml:"category_weights" json:"category_weights"`

	CountryNorms    map[string]Norm `yaml:"country_norms" json:"country_norms"`
	FallbackCountry string          `yaml:"fallback_country" json:"fallback_country"`
	ZRange          float64         `yaml:"z_range" json:"z_range"`

	RiskThresholds []RiskThreshold `yaml:"risk_thresholds" json:"risk_thresholds"`

	// PCAWeights belong to the reserved alternate model; the active CWI path
	// does not read them.
	PCAWeights map[string]float64 `yaml:"pca_weights" json:"pca_weights"`
}

// ConstructFor returns the construct a question belongs to.
func (t *Tables) ConstructFor(questionID string) (string, bool) {
	c, ok := t.QuestionConstructs[questionID]
	return c, ok
}

// IsReversed reports whether a question is reverse-scored.
func (t *Tables) IsReversed(questionID string) bool {
	return slices.Contains(t.ReverseScored, questionID)
}

// NormFor returns the population norm for a construct, falling back to
// DefaultNorm for constructs absent from the table.
func (t *Tables) NormFor(construct string) Norm {
	if n, ok := t.PopulationNorms[construct]; ok {
		return n
	}
	return t.DefaultNorm
}

// CountryNorm resolves a country to its calibration bucket. Lookup ignores
// surrounding space and case; unmapped countries use FallbackCountry.
func (t *Tables) CountryNorm(country string) (string, Norm) {
	want := cases.Fold().String(strings.TrimSpace(country))
	if want != "" {
		for name, n := range t.CountryNorms {
			if cases.Fold().String(name) == want {
				return name, n
			}
		}
	}
	return t.FallbackCountry, t.CountryNorms[t.FallbackCountry]
}

// Clone returns a deep copy, used to derive alternate calibration sets.
func (t *Tables) Clone() *Tables {
	c := *t
	c.QuestionConstructs = maps.Clone(t.QuestionConstructs)
	c.ReverseScored = slices.Clone(t.ReverseScored)
	c.LikertScale = maps.Clone(t.LikertScale)
	c.LikelihoodScale = maps.Clone(t.LikelihoodScale)
	c.EmergencyMonths = maps.Clone(t.EmergencyMonths)
	c.SocialPeopleCount = maps.Clone(t.SocialPeopleCount)
	c.InternalLocusStatements = slices.Clone(t.InternalLocusStatements)
	c.InternalLocusKeywords = make([][]string, len(t.InternalLocusKeywords))
	for i, kw := range t.InternalLocusKeywords {
		c.InternalLocusKeywords[i] = slices.Clone(kw)
	}
	c.Crisis.Items = slices.Clone(t.Crisis.Items)
	c.CognitiveReflectionAnswers = maps.Clone(t.CognitiveReflectionAnswers)
	c.DelayedRewardOptions = maps.Clone(t.DelayedRewardOptions)
	c.NumeracyAnswers = maps.Clone(t.NumeracyAnswers)
	c.LCAPoints = make(map[string]map[string]float64, len(t.LCAPoints))
	for q, pts := range t.LCAPoints {
		c.LCAPoints[q] = maps.Clone(pts)
	}
	c.PopulationNorms = maps.Clone(t.PopulationNorms)
	c.Categories = make(map[model.Category][]string, len(t.Categories))
	for cat, constructs := range t.Categories {
		c.Categories[cat] = slices.Clone(constructs)
	}
	c.CategoryWeights = maps.Clone(t.CategoryWeights)
	c.CountryNorms = maps.Clone(t.CountryNorms)
	c.RiskThresholds = slices.Clone(t.RiskThresholds)
	c.PCAWeights = maps.Clone(t.PCAWeights)
	return &c
}
