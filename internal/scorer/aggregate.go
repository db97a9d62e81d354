package scorer

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// ErrLCAOverflow signals duplicated or corrupted loan-consequence answers.
// Scoring halts for the submission instead of capping the value.
var ErrLCAOverflow = eris.New("scorer: loan consequence awareness raw sum overflow")

// Aggregate reduces responses to one mean per construct. Demographic, gaming
// and unmapped questions are skipped, as are blank answers and answers the
// respondent marked "N/A". A construct is present only if at least one answer
// contributed to it.
func Aggregate(t *calibration.Tables, responses model.Responses) (map[string]float64, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, id := range responses.IDs() {
		kind := Classify(t, id)
		if !kind.Contributes() {
			continue
		}
		answer, _ := responses.Answer(id)
		if answer == "" || model.IsNotApplicable(answer) {
			continue
		}
		construct, _ := t.ConstructFor(id)
		if kind == KindLoanConsequence && construct != calibration.ConstructLoanConsequence {
			return nil, eris.Wrapf(ErrLCAOverflow, "scorer: unexpected lca question %s", id)
		}
		sums[construct] += ScoreQuestion(t, id, answer)
		counts[construct]++
	}

	if lca := sums[calibration.ConstructLoanConsequence]; lca > t.LCAMaxRawSum {
		return nil, eris.Wrapf(ErrLCAOverflow, "scorer: lca raw sum %.1f exceeds %.1f (%d answers)",
			lca, t.LCAMaxRawSum, counts[calibration.ConstructLoanConsequence])
	}

	means := make(map[string]float64, len(sums))
	for construct, sum := range sums {
		means[construct] = sum / float64(counts[construct])
	}
	return means, nil
}

// Standardize converts construct means to z-scores against the population
// norms. Constructs missing from the norms table use DefaultNorm.
func Standardize(t *calibration.Tables, scores map[string]float64) map[string]float64 {
	z := make(map[string]float64, len(scores))
	for construct, raw := range scores {
		n := t.NormFor(construct)
		std := n.Std
		if std <= 0 {
			std = 1
		}
		z[construct] = (raw - n.Mean) / std
	}
	return z
}

// PCAIndex is the reserved alternate composite: a weighted mean of construct
// z-scores renormalized over the constructs present. It is not part of the
// CWI. Returns nil when no weighted construct has data.
func PCAIndex(zScores, weights map[string]float64) *float64 {
	constructs := make([]string, 0, len(weights))
	for c := range weights {
		constructs = append(constructs, c)
	}
	sort.Strings(constructs)

	var total, used float64
	for _, c := range constructs {
		z, ok := zScores[c]
		if !ok {
			continue
		}
		total += z * weights[c]
		used += weights[c]
	}
	if used == 0 {
		return nil
	}
	return model.Float(total / used)
}
