package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// cleanResponses answers every checked question plausibly.
func cleanResponses() model.Responses {
	r := model.Responses{
		"q1": "Often", "q2": "Often", "q4": "Rarely",
		"q5": "Often", "q6": "Sometimes",
		"q8": "Often", "q9": "Often", "q10": "Rarely", "q11": "Rarely",
		"q37": "1-3 months", "q38": "Likely",
		"q40": "2-3 people", "q41": "Likely",
		"q52": "Often", "q53": "Often",
		"gd1": "Often", "gd2": "Sometimes", "gd3": "Often",
	}
	// Trait blocks: forward items Often, reversed items Rarely.
	for _, q := range []string{"q12", "q13", "q15", "q16", "q19", "q20", "q21", "q23", "q24", "q25", "q27", "q28", "q29", "q31"} {
		r[q] = "Often"
	}
	for _, q := range []string{"q14", "q17", "q18", "q22", "q26", "q30"} {
		r[q] = "Rarely"
	}
	for i, s := range calibration.Default().InternalLocusStatements {
		r[[]string{"q32", "q33", "q34", "q35", "q36"}[i]] = s
	}
	return r
}

func flagIDs(res *model.ValidationResult) []string {
	ids := make([]string, 0, len(res.Flags))
	for _, f := range res.Flags {
		ids = append(ids, f.CheckID)
	}
	return ids
}

func TestChecks_Battery(t *testing.T) {
	checks := Checks()
	require.Len(t, checks, 16)

	seen := make(map[string]bool)
	for _, c := range checks {
		assert.False(t, seen[c.ID], "duplicate check id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description)
		assert.NotEmpty(t, c.Questions)
		assert.Contains(t, []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow}, c.Severity)
	}
}

func TestValidate_Clean(t *testing.T) {
	v := NewValidator(calibration.Default())

	res := v.Validate(cleanResponses())
	assert.Equal(t, 16, res.TotalChecks)
	assert.Equal(t, 0, res.FlagCount)
	assert.Empty(t, res.Flags)
	assert.Equal(t, 100, res.ConsistencyScore)
	assert.Equal(t, model.TierMinor, res.SeverityLevel)
	assert.Equal(t, model.RecommendProceed, res.Recommendation)
}

func TestValidate_EmptyIsTotal(t *testing.T) {
	v := NewValidator(calibration.Default())

	for _, r := range []model.Responses{nil, {}, {"q1": "N/A", "q5": "garbage", "q43": "[not json"}} {
		res := v.Validate(r)
		assert.Equal(t, 16, res.TotalChecks)
		assert.Equal(t, 0, res.FlagCount)
		assert.NotNil(t, res.Flags)
	}
}

func TestValidate_EachCheck(t *testing.T) {
	v := NewValidator(calibration.Default())

	tests := []struct {
		name     string
		override model.Responses
		want     string
	}{
		{"saver without savings", model.Responses{"q5": "Always", "q37": "None"}, "C01"},
		{"on time payer missing bills", model.Responses{"q1": "Always", "q4": "Often"}, "C02"},
		{"impulsive yet controlled", model.Responses{"q10": "Always", "q8": "Often", "q11": "Often", "q9": "Often"}, "C03"},
		{"conscientiousness spread", model.Responses{"q12": "Always", "q13": "Never", "q14": "Never", "q15": "Never"}, "C04"},
		{"openness spread", model.Responses{"q24": "Never", "q25": "Always", "q26": "Always", "q27": "Always"}, "C05"},
		{"extraversion spread", model.Responses{"q28": "Always", "q29": "Never", "q30": "Never", "q31": "Never"}, "C06"},
		{"agreeableness spread", model.Responses{"q20": "Always", "q21": "Never", "q22": "Never", "q23": "Never"}, "C07"},
		{"emotional stability spread", model.Responses{"q16": "Always", "q17": "Always", "q18": "Always", "q19": "Never"}, "C08"},
		{"impulse control spread", model.Responses{"q8": "Never", "q9": "Often", "q10": "Never", "q11": "Always"}, "C09"},
		{"payment duplicate", model.Responses{"q2": "Always", "gd1": "Rarely"}, "C10"},
		{"saving duplicate", model.Responses{"q6": "Never", "gd2": "Often"}, "C11"},
		{"self control duplicate", model.Responses{"q9": "Never", "gd3": "Always"}, "C12"},
		{"locus mixed", model.Responses{
			"q34": "Luck decides most of it.",
			"q35": "Other people decide for me.",
			"q36": "Fate.",
		}, "C13"},
		{"planner without tracking", model.Responses{"q52": "Always", "q53": "Never"}, "C14"},
		{"reserves without coverage", model.Responses{"q37": "More than 6 months", "q38": "Very unlikely"}, "C15"},
		{"support without network", model.Responses{"q40": "None", "q41": "Very likely"}, "C16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := cleanResponses()
			for k, val := range tt.override {
				r[k] = val
			}
			res := v.Validate(r)
			assert.Equal(t, []string{tt.want}, flagIDs(res))
			assert.Equal(t, 93, res.ConsistencyScore)
		})
	}
}

func TestValidate_ThreeFlagsNeedsReview(t *testing.T) {
	v := NewValidator(calibration.Default())

	r := cleanResponses()
	r["q5"] = "Always"
	r["q37"] = "None"
	r["q52"] = "Always"
	r["q53"] = "Never"
	r["q2"] = "Always"
	r["gd1"] = "Never"

	res := v.Validate(r)
	assert.Equal(t, []string{"C01", "C10", "C14"}, flagIDs(res))
	assert.Equal(t, 3, res.FlagCount)
	assert.Equal(t, 79, res.ConsistencyScore)
	assert.Equal(t, model.TierModerate, res.SeverityLevel)
	assert.Equal(t, model.RecommendReview, res.Recommendation)
	assert.Equal(t, model.SeverityHigh, res.Flags[0].Severity)
	assert.Equal(t, []string{"q5", "q37"}, res.Flags[0].Questions)
}

func TestValidate_VarianceNeedsThreeItems(t *testing.T) {
	v := NewValidator(calibration.Default())

	r := cleanResponses()
	r["q12"] = "Always"
	r["q13"] = "Never"
	delete(r, "q14")
	r["q15"] = "N/A"

	assert.Empty(t, v.Validate(r).Flags)
}

func TestValidate_LocusCaseInsensitive(t *testing.T) {
	v := NewValidator(calibration.Default())

	r := cleanResponses()
	r["q32"] = "IT IS MY OWN EFFORTS THAT MATTER"
	r["q33"] = "Luck."
	r["q34"] = "Luck."
	r["q35"] = "Luck."
	r["q36"] = "Only Good Decisions help."

	assert.Equal(t, []string{"C13"}, flagIDs(v.Validate(r)))
}

func TestScoreAndTier(t *testing.T) {
	tests := []struct {
		flags int
		score int
		tier  model.SeverityTier
		rec   model.Recommendation
	}{
		{0, 100, model.TierMinor, model.RecommendProceed},
		{2, 86, model.TierMinor, model.RecommendProceed},
		{3, 79, model.TierModerate, model.RecommendReview},
		{5, 65, model.TierModerate, model.RecommendReview},
		{6, 58, model.TierSevere, model.RecommendRetake},
		{14, 2, model.TierSevere, model.RecommendRetake},
		{15, 0, model.TierSevere, model.RecommendRetake},
		{16, 0, model.TierSevere, model.RecommendRetake},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, Score(tt.flags), "flags=%d", tt.flags)
		tier, rec := Tier(tt.flags)
		assert.Equal(t, tt.tier, tier, "flags=%d", tt.flags)
		assert.Equal(t, tt.rec, rec, "flags=%d", tt.flags)
	}
}
