package scorer

import (
	"math"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// lcaMaxPoints is the best score a single LCA option can earn.
const lcaMaxPoints = 3

// NCI computes the neurocognitive index (0-100) from construct means. It
// needs financial numeracy and loan consequence awareness; otherwise it
// returns nil. Records from older questionnaire revisions lack cognitive
// reflection and delay discounting, in which case the numeracy sub-index
// falls back to financial numeracy alone.
func NCI(scores map[string]float64) *float64 {
	numeracy, ok := scores[calibration.ConstructFinancialNumeracy]
	if !ok {
		return nil
	}
	lca, ok := scores[calibration.ConstructLoanConsequence]
	if !ok {
		return nil
	}

	asfn := numeracy * 100
	crt, hasCRT := scores[calibration.ConstructCognitiveReflection]
	delay, hasDelay := scores[calibration.ConstructDelayDiscounting]
	if hasCRT && hasDelay {
		asfn = (crt + delay + numeracy) / 3 * 100
	}
	lcaIndex := lca / lcaMaxPoints * 100

	return model.Float(round1(0.5*asfn + 0.5*lcaIndex))
}

// FiveCs averages the raw construct means mapped to each category with equal
// weight and rescales from the 1-5 range to 0-100. Categories without any
// construct data stay nil.
func FiveCs(t *calibration.Tables, scores map[string]float64) model.FiveCScores {
	var out model.FiveCScores
	for _, cat := range model.Categories {
		var sum float64
		n := 0
		for _, construct := range t.Categories[cat] {
			if v, ok := scores[construct]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		out.Set(cat, model.Float(rescaleLikert(sum/float64(n))))
	}
	return out
}

func rescaleLikert(x float64) float64 {
	return clamp((x-1)/4*100, 0, 100)
}

// CWIRaw is the weighted mean of the present category scores, renormalized
// by the weights actually used. Nil when no category has data.
func CWIRaw(t *calibration.Tables, five model.FiveCScores) *float64 {
	var total, used float64
	for _, cat := range model.Categories {
		v := five.Get(cat)
		if v == nil {
			continue
		}
		w := t.CategoryWeights[cat]
		total += *v * w
		used += w
	}
	if used == 0 {
		return nil
	}
	return model.Float(total / used)
}

// CountryScore is a raw CWI re-expressed against one country's calibration.
type CountryScore struct {
	Bucket    string
	Z         float64
	Score0100 float64
}

// NormalizeCountry converts a raw CWI to a country z-score and maps
// [-ZRange, +ZRange] linearly onto 0-100 (clamped, one decimal).
func NormalizeCountry(t *calibration.Tables, cwiRaw float64, country string) CountryScore {
	bucket, n := t.CountryNorm(country)
	std := n.Std
	if std <= 0 {
		std = 1
	}
	z := (cwiRaw - n.Mean) / std

	r := t.ZRange
	if r <= 0 {
		r = 3
	}
	return CountryScore{
		Bucket:    bucket,
		Z:         z,
		Score0100: round1(clamp((z+r)/(2*r)*100, 0, 100)),
	}
}

// NormalCDF approximates the standard normal CDF with Abramowitz and Stegun
// formula 26.2.17 (absolute error below 7.5e-8).
func NormalCDF(z float64) float64 {
	const (
		p  = 0.2316419
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
	)
	if math.IsNaN(z) {
		return 0.5
	}
	x := math.Abs(z)
	k := 1 / (1 + p*x)
	pdf := math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
	upper := pdf * k * (b1 + k*(b2+k*(b3+k*(b4+k*b5))))

	cdf := 1 - upper
	if z < 0 {
		cdf = upper
	}
	return clamp(cdf, 0, 1)
}

// RiskBandFor returns the first band whose threshold the percentile meets.
func RiskBandFor(t *calibration.Tables, percentile float64) model.RiskBand {
	for _, th := range t.RiskThresholds {
		if percentile >= th.MinPercentile {
			return th.Band
		}
	}
	return model.RiskBandUnknown
}
