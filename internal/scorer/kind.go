// Package scorer turns questionnaire responses into construct scores, the
// 5Cs breakdown and the country-normalized creditworthiness index (CWI).
//
// Every function here is a pure transformation of its arguments and the
// calibration tables passed in; there is no shared state between calls.
package scorer

import (
	"strings"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// Kind is the scoring rule family a question belongs to.
type Kind int

// Question kinds. KindDemographic and KindUnmapped are never scored.
const (
	KindUnmapped Kind = iota
	KindDemographic
	KindLikert
	KindLocus
	KindEmergency
	KindSocialCollateral
	KindCrisisRanking
	KindCognitiveReflection
	KindDelayDiscounting
	KindFinancialNumeracy
	KindLoanConsequence
	KindGamingDetection
)

var kindNames = map[Kind]string{
	KindUnmapped:            "unmapped",
	KindDemographic:         "demographic",
	KindLikert:              "likert",
	KindLocus:               "locus",
	KindEmergency:           "emergency",
	KindSocialCollateral:    "social_collateral",
	KindCrisisRanking:       "crisis_ranking",
	KindCognitiveReflection: "cognitive_reflection",
	KindDelayDiscounting:    "delay_discounting",
	KindFinancialNumeracy:   "financial_numeracy",
	KindLoanConsequence:     "loan_consequence",
	KindGamingDetection:     "gaming_detection",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Contributes reports whether answers of this kind feed a construct mean.
func (k Kind) Contributes() bool {
	switch k {
	case KindUnmapped, KindDemographic, KindGamingDetection:
		return false
	}
	return true
}

// Classify assigns a question id to its scoring rule family. Prefix rules
// take precedence over the construct the id is mapped to.
func Classify(t *calibration.Tables, questionID string) Kind {
	switch {
	case model.IsDemographic(questionID):
		return KindDemographic
	case strings.HasPrefix(questionID, "gd"):
		return KindGamingDetection
	case strings.HasPrefix(questionID, "lca"):
		// Unmapped lca ids still classify so Aggregate can reject them.
		return KindLoanConsequence
	}

	construct, ok := t.ConstructFor(questionID)
	if !ok {
		return KindUnmapped
	}
	if strings.HasPrefix(questionID, "asfn") {
		return KindFinancialNumeracy
	}

	switch construct {
	case calibration.ConstructLocusOfControl:
		return KindLocus
	case calibration.ConstructEmergency:
		return KindEmergency
	case calibration.ConstructSocialCollateral:
		return KindSocialCollateral
	case calibration.ConstructCrisisManagement:
		return KindCrisisRanking
	case calibration.ConstructCognitiveReflection:
		return KindCognitiveReflection
	case calibration.ConstructDelayDiscounting:
		return KindDelayDiscounting
	case calibration.ConstructFinancialNumeracy:
		return KindFinancialNumeracy
	case calibration.ConstructLoanConsequence:
		return KindLoanConsequence
	default:
		return KindLikert
	}
}
