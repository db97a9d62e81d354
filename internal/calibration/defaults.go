package calibration

import "github.com/sells-group/finpsych/internal/model"

// DefaultModelVersion identifies the built-in calibration set. Bump it with
// any change to the tables below.
const DefaultModelVersion = "finpsych-cwi-2.1.0"

// Default returns the built-in calibration set.
func Default() *Tables {
	return &Tables{
		ModelVersion: DefaultModelVersion,

		QuestionConstructs: defaultQuestionConstructs(),
		ReverseScored: []string{
			"q4", "q7", "q10", "q11", "q14", "q17", "q18", "q22", "q26", "q30",
			"q39", "q55", "q58", "q60", "q64",
		},

		LikertScale: Vocabulary{
			"Never":      1,
			"Rarely":     2,
			"Sometimes":  3,
			"Often":      4,
			"Always":     5,
			"Very often": 5,
		},
		LikertDefault: 3,
		LikelihoodScale: Vocabulary{
			"Very unlikely": 1,
			"Unlikely":      2,
			"Not sure":      3,
			"Neutral":       3,
			"Likely":        4,
			"Very likely":   5,
		},

		EmergencyOrdinalQuestion: "q37",
		EmergencyMonths: Vocabulary{
			"None":               1,
			"Less than 1 month":  2,
			"1-3 months":         3,
			"3-6 months":         4,
			"More than 6 months": 5,
		},

		SocialOrdinalQuestion: "q40",
		SocialPeopleCount: Vocabulary{
			"None":               1,
			"1 person":           2,
			"2-3 people":         3,
			"4-5 people":         4,
			"More than 5 people": 5,
		},

		InternalLocusStatements: []string{
			"My financial success depends mainly on my own efforts.",
			"If I plan carefully, I can reach my financial goals.",
			"What happens to me financially is my own doing.",
			"Getting ahead financially is a matter of hard work, not luck.",
			"I can avoid money problems by making good decisions.",
		},
		InternalLocusKeywords: [][]string{
			{"my own efforts"},
			{"plan carefully"},
			{"my own doing"},
			{"hard work"},
			{"good decisions"},
		},

		Crisis: CrisisRanking{
			Items: []string{
				"Contact lender", "Skip payments", "Borrow from family",
				"Sell assets", "Cut expenses", "Take another loan",
			},
			Lender:       "Contact lender",
			Skip:         "Skip payments",
			Base:         3,
			LenderWeight: 0.3,
			SkipWeight:   0.2,
		},

		// Bat-and-ball (0.05, intuitive 0.10), widgets (5 minutes), lily pads (47 days).
		CognitiveReflectionAnswers: map[string]float64{
			"q44": 0.05,
			"q45": 5,
			"q46": 47,
		},
		DelayedRewardOptions: map[string]string{
			"q47": "1,500",
			"q48": "800",
		},
		NumeracyAnswers: map[string]string{
			"q49":     "More than 102",
			"q50":     "Less than today",
			"q51":     "False",
			"asfn1_1": "250",
			"asfn1_2": "40",
			"asfn1_3": "1,200",
			"asfn1_4": "3 days",
			"asfn1_5": "Shop B",
			"asfn2_1": "10%",
			"asfn2_2": "1,331",
			"asfn2_3": "Loan A",
			"asfn2_4": "6 months",
			"asfn2_5": "2,750",
		},

		LCAPoints: map[string]map[string]float64{
			"lca1": {"A)": 3, "B)": 1, "C)": 0, "D)": 2},
			"lca2": {"A)": 0, "B)": 3, "C)": 2, "D)": 1},
			"lca3": {"A)": 2, "B)": 0, "C)": 3, "D)": 1},
			"lca4": {"A)": 1, "B)": 2, "C)": 0, "D)": 3},
			"lca5": {"A)": 3, "B)": 2, "C)": 1, "D)": 0},
		},
		LCAMaxRawSum: 15,

		PopulationNorms: map[string]Norm{
			"payment_history":            {Mean: 3.82, Std: 0.86},
			"saving_behavior":            {Mean: 3.21, Std: 0.94},
			"self_control":               {Mean: 3.47, Std: 0.81},
			"conscientiousness":          {Mean: 3.76, Std: 0.72},
			"emotional_stability":        {Mean: 3.18, Std: 0.84},
			"agreeableness":              {Mean: 3.88, Std: 0.66},
			"openness":                   {Mean: 3.54, Std: 0.71},
			"extraversion":               {Mean: 3.29, Std: 0.83},
			"locus_of_control":           {Mean: 0.62, Std: 0.27},
			"emergency_preparedness":     {Mean: 2.74, Std: 1.02},
			"social_collateral":          {Mean: 3.06, Std: 0.97},
			"crisis_management":          {Mean: 3.91, Std: 0.58},
			"cognitive_reflection":       {Mean: 0.38, Std: 0.33},
			"delay_discounting":          {Mean: 0.55, Std: 0.41},
			"financial_numeracy":         {Mean: 0.61, Std: 0.22},
			"financial_planning":         {Mean: 3.35, Std: 0.88},
			"income_stability":           {Mean: 3.12, Std: 0.95},
			"debt_management":            {Mean: 3.44, Std: 0.87},
			"economic_outlook":           {Mean: 3.27, Std: 0.79},
			"loan_consequence_awareness": {Mean: 1.94, Std: 0.61},
		},
		DefaultNorm: Norm{Mean: 3, Std: 1},

		Categories: map[model.Category][]string{
			model.CategoryCharacter:  {"payment_history", "conscientiousness", "agreeableness", "self_control"},
			model.CategoryCapacity:   {"income_stability", "financial_planning", "emotional_stability"},
			model.CategoryCapital:    {"saving_behavior", "emergency_preparedness", "debt_management"},
			model.CategoryCollateral: {"social_collateral", "extraversion"},
			model.CategoryConditions: {"crisis_management", "economic_outlook", "openness"},
		},
		CategoryWeights: map[model.Category]float64{
			model.CategoryCharacter:  0.20,
			model.CategoryCapacity:   0.20,
			model.CategoryCapital:    0.20,
			model.CategoryCollateral: 0.20,
			model.CategoryConditions: 0.20,
		},

		CountryNorms: map[string]Norm{
			"Kenya":        {Mean: 58.4, Std: 11.2},
			"Nigeria":      {Mean: 55.9, Std: 12.6},
			"Ghana":        {Mean: 57.1, Std: 11.8},
			"Uganda":       {Mean: 54.8, Std: 12.1},
			"Tanzania":     {Mean: 55.3, Std: 11.9},
			"Rwanda":       {Mean: 56.2, Std: 11.4},
			"South Africa": {Mean: 60.3, Std: 10.9},
			"India":        {Mean: 59.1, Std: 11.5},
			"Other":        {Mean: 57.0, Std: 12.0},
		},
		FallbackCountry: "Other",
		ZRange:          3,

		RiskThresholds: []RiskThreshold{
			{Band: model.RiskBandLow, MinPercentile: 0.75},
			{Band: model.RiskBandModerate, MinPercentile: 0.40},
			{Band: model.RiskBandHigh, MinPercentile: 0.15},
			{Band: model.RiskBandVeryHigh, MinPercentile: 0},
		},

		PCAWeights: map[string]float64{
			"payment_history":        0.18,
			"self_control":           0.14,
			"conscientiousness":      0.12,
			"saving_behavior":        0.11,
			"emergency_preparedness": 0.09,
			"financial_planning":     0.09,
			"income_stability":       0.08,
			"debt_management":        0.07,
			"emotional_stability":    0.05,
			"social_collateral":      0.04,
			"locus_of_control":       0.03,
		},
	}
}

func defaultQuestionConstructs() map[string]string {
	groups := []struct {
		construct string
		questions []string
	}{
		{"payment_history", []string{"q1", "q2", "q3", "q4"}},
		{"saving_behavior", []string{"q5", "q6", "q7"}},
		{"self_control", []string{"q8", "q9", "q10", "q11"}},
		{"conscientiousness", []string{"q12", "q13", "q14", "q15"}},
		{"emotional_stability", []string{"q16", "q17", "q18", "q19"}},
		{"agreeableness", []string{"q20", "q21", "q22", "q23"}},
		{"openness", []string{"q24", "q25", "q26", "q27"}},
		{"extraversion", []string{"q28", "q29", "q30", "q31"}},
		{"locus_of_control", []string{"q32", "q33", "q34", "q35", "q36"}},
		{"emergency_preparedness", []string{"q37", "q38", "q39"}},
		{"social_collateral", []string{"q40", "q41", "q42"}},
		{"crisis_management", []string{"q43"}},
		{"cognitive_reflection", []string{"q44", "q45", "q46"}},
		{"delay_discounting", []string{"q47", "q48"}},
		{"financial_numeracy", []string{
			"q49", "q50", "q51",
			"asfn1_1", "asfn1_2", "asfn1_3", "asfn1_4", "asfn1_5",
			"asfn2_1", "asfn2_2", "asfn2_3", "asfn2_4", "asfn2_5",
		}},
		{"financial_planning", []string{"q52", "q53", "q54", "q55"}},
		{"income_stability", []string{"q56", "q57", "q58"}},
		{"debt_management", []string{"q59", "q60", "q61"}},
		{"economic_outlook", []string{"q62", "q63", "q64", "q65"}},
		{"loan_consequence_awareness", []string{"lca1", "lca2", "lca3", "lca4", "lca5"}},
	}

	m := make(map[string]string, 80)
	for _, g := range groups {
		for _, q := range g.questions {
			m[q] = g.construct
		}
	}
	return m
}
