package model

import "time"

// Category is one of the five credit risk categories (the 5Cs).
type Category string

// The five categories, in reporting order.
const (
	CategoryCharacter  Category = "character"
	CategoryCapacity   Category = "capacity"
	CategoryCapital    Category = "capital"
	CategoryCollateral Category = "collateral"
	CategoryConditions Category = "conditions"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryCharacter,
	CategoryCapacity,
	CategoryCapital,
	CategoryCollateral,
	CategoryConditions,
}

// FiveCScores holds the 0-100 score per category. A nil field means no
// construct mapped to that category had data; it is never imputed.
type FiveCScores struct {
	Character  *float64 `json:"character"`
	Capacity   *float64 `json:"capacity"`
	Capital    *float64 `json:"capital"`
	Collateral *float64 `json:"collateral"`
	Conditions *float64 `json:"conditions"`
}

// Get returns the score for a category.
func (f FiveCScores) Get(c Category) *float64 {
	switch c {
	case CategoryCharacter:
		return f.Character
	case CategoryCapacity:
		return f.Capacity
	case CategoryCapital:
		return f.Capital
	case CategoryCollateral:
		return f.Collateral
	case CategoryConditions:
		return f.Conditions
	}
	return nil
}

// Set assigns the score for a category. Unknown categories are ignored.
func (f *FiveCScores) Set(c Category, v *float64) {
	switch c {
	case CategoryCharacter:
		f.Character = v
	case CategoryCapacity:
		f.Capacity = v
	case CategoryCapital:
		f.Capital = v
	case CategoryCollateral:
		f.Collateral = v
	case CategoryConditions:
		f.Conditions = v
	}
}

// Present returns the number of categories that have data.
func (f FiveCScores) Present() int {
	n := 0
	for _, c := range Categories {
		if f.Get(c) != nil {
			n++
		}
	}
	return n
}

// RiskBand is the discrete credit risk classification.
type RiskBand string

// Risk bands from best to worst. RiskBandUnknown is used when no CWI exists.
const (
	RiskBandLow      RiskBand = "LOW"
	RiskBandModerate RiskBand = "MODERATE"
	RiskBandHigh     RiskBand = "HIGH"
	RiskBandVeryHigh RiskBand = "VERY_HIGH"
	RiskBandUnknown  RiskBand = "UNKNOWN"
)

// ScoringResult is the output of the creditworthiness pipeline for one
// submission. Nullable fields stay nil when the data needed to compute them
// is missing.
type ScoringResult struct {
	ConstructScores    map[string]float64 `json:"construct_scores"`
	ConstructZScores   map[string]float64 `json:"construct_z_scores"`
	FiveCScores        FiveCScores        `json:"five_c_scores"`
	CWIRaw             *float64           `json:"cwi_raw"`
	CWINormalized      *float64           `json:"cwi_normalized"`
	CWI0100            *float64           `json:"cwi_0_100"`
	RiskBand           RiskBand           `json:"risk_band"`
	RiskPercentile     *float64           `json:"risk_percentile"`
	NCI                *float64           `json:"nci"`
	ModelVersion       string             `json:"model_version"`
	CalibrationHash    string             `json:"calibration_hash"`
	Country            string             `json:"country"`
	CalibrationCountry string             `json:"calibration_country"`
	ScoredAt           time.Time          `json:"scored_at"`
}

// Float returns a pointer to v. Used to build nullable scores.
func Float(v float64) *float64 { return &v }
