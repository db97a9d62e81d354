package scorer

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// reverseBase is the Likert reversal constant: a reversed answer scores 6 - x.
const reverseBase = 6

// leadingNumber matches the numeric prefix of an answer such as "5minutes".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

var currencyStripper = strings.NewReplacer(
	"$", "", "£", "", "€", "", "₦", "", "₹", "", "₵", "",
	"KSh", "", "Ksh", "", "KES", "", ",", "",
)

// ScoreQuestion maps one answer to its point value. It never fails: answers
// outside a question's vocabulary degrade to the documented default.
func ScoreQuestion(t *calibration.Tables, questionID, answer string) float64 {
	answer = model.NormalizeAnswer(answer)

	switch kind := Classify(t, questionID); kind {
	case KindLikert:
		return scoreLikert(t, questionID, answer)
	case KindLocus:
		return scoreLocus(t, answer)
	case KindEmergency:
		return scoreOrdinalOrLikelihood(t, questionID, answer, t.EmergencyOrdinalQuestion, t.EmergencyMonths)
	case KindSocialCollateral:
		return scoreOrdinalOrLikelihood(t, questionID, answer, t.SocialOrdinalQuestion, t.SocialPeopleCount)
	case KindCrisisRanking:
		return scoreCrisisRanking(t, questionID, answer)
	case KindCognitiveReflection:
		return scoreCognitiveReflection(t, questionID, answer)
	case KindDelayDiscounting:
		return scoreDelayDiscounting(t, questionID, answer)
	case KindFinancialNumeracy:
		return scoreNumeracy(t, questionID, answer)
	case KindLoanConsequence:
		return scoreLoanConsequence(t, questionID, answer)
	case KindGamingDetection, KindDemographic, KindUnmapped:
		return 0
	default:
		zap.L().Error("scorer: unhandled question kind",
			zap.String("question_id", questionID),
			zap.Stringer("kind", kind),
		)
		return 0
	}
}

func scoreLikert(t *calibration.Tables, questionID, answer string) float64 {
	v, ok := t.LikertScale.Lookup(answer)
	if !ok {
		zap.L().Warn("scorer: unrecognized likert answer, using default",
			zap.String("question_id", questionID),
			zap.String("answer", answer),
			zap.Float64("default", t.LikertDefault),
		)
		v = t.LikertDefault
	}
	if t.IsReversed(questionID) {
		v = reverseBase - v
	}
	return v
}

func scoreLocus(t *calibration.Tables, answer string) float64 {
	if slices.Contains(t.InternalLocusStatements, answer) {
		return 1
	}
	return 0
}

// scoreOrdinalOrLikelihood handles constructs that mix one ordinal question
// with likelihood-scale questions.
func scoreOrdinalOrLikelihood(t *calibration.Tables, questionID, answer, ordinalID string, ordinal calibration.Vocabulary) float64 {
	if questionID == ordinalID {
		if v, ok := ordinal.Lookup(answer); ok {
			return v
		}
		zap.L().Warn("scorer: unrecognized ordinal answer, using default",
			zap.String("question_id", questionID),
			zap.String("answer", answer),
		)
		return t.LikertDefault
	}

	v, ok := t.LikelihoodScale.Lookup(answer)
	if !ok {
		zap.L().Warn("scorer: unrecognized likelihood answer, using default",
			zap.String("question_id", questionID),
			zap.String("answer", answer),
		)
		v = t.LikertDefault
	}
	if t.IsReversed(questionID) {
		v = reverseBase - v
	}
	return v
}

// scoreCrisisRanking scores a JSON-encoded ranking. Contacting the lender
// early and skipping payments late both raise the score. Positions are
// 1-based.
func scoreCrisisRanking(t *calibration.Tables, questionID, answer string) float64 {
	c := t.Crisis
	if !gjson.Valid(answer) || !gjson.Parse(answer).IsArray() {
		zap.L().Warn("scorer: malformed crisis ranking, using default",
			zap.String("question_id", questionID),
		)
		return c.Base
	}

	var lenderPos, skipPos int
	for i, item := range gjson.Parse(answer).Array() {
		switch model.NormalizeAnswer(item.String()) {
		case c.Lender:
			lenderPos = i + 1
		case c.Skip:
			skipPos = i + 1
		}
	}
	if lenderPos == 0 || skipPos == 0 {
		zap.L().Warn("scorer: crisis ranking missing required items, using default",
			zap.String("question_id", questionID),
		)
		return c.Base
	}

	n := float64(len(c.Items))
	score := c.Base + c.LenderWeight*(n-float64(lenderPos)) + c.SkipWeight*float64(skipPos)
	return clamp(score, 1, 5)
}

// scoreCognitiveReflection awards 1 only for the exact correct value, so the
// intuitive wrong answer scores the same as any other miss. Only the leading
// number counts; trailing units such as "minutes" are ignored.
func scoreCognitiveReflection(t *calibration.Tables, questionID, answer string) float64 {
	want, ok := t.CognitiveReflectionAnswers[questionID]
	if !ok {
		return 0
	}
	cleaned := currencyStripper.Replace(strings.Join(strings.Fields(answer), ""))
	got, err := strconv.ParseFloat(leadingNumber.FindString(cleaned), 64)
	if err != nil {
		return 0
	}
	if math.Abs(got-want) < 1e-9 {
		return 1
	}
	return 0
}

func scoreDelayDiscounting(t *calibration.Tables, questionID, answer string) float64 {
	delayed, ok := t.DelayedRewardOptions[questionID]
	if !ok || delayed == "" {
		return 0
	}
	if strings.Contains(answer, delayed) {
		return 1
	}
	return 0
}

func scoreNumeracy(t *calibration.Tables, questionID, answer string) float64 {
	if correct, ok := t.NumeracyAnswers[questionID]; ok && answer == correct {
		return 1
	}
	return 0
}

// scoreLoanConsequence looks up the option prefix ("A)".."D)").
func scoreLoanConsequence(t *calibration.Tables, questionID, answer string) float64 {
	points, ok := t.LCAPoints[questionID]
	if !ok {
		return 0
	}
	r := []rune(answer)
	if len(r) < 2 {
		return 0
	}
	return points[strings.ToUpper(string(r[:2]))]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
