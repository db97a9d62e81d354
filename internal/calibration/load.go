package calibration

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/finpsych/internal/model"
)

// Load returns the built-in tables when path is empty, otherwise the built-in
// tables overlaid with the YAML file at path.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile overlays a YAML calibration file on top of the defaults. Maps in
// the file are merged key by key; lists replace the default list. The result
// is validated before it is returned.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "calibration: read %s", path)
	}
	return Parse(data)
}

// Parse overlays YAML calibration data on top of the defaults.
func Parse(data []byte) (*Tables, error) {
	t := Default()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, eris.Wrap(err, "calibration: decode yaml")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal renders the tables as YAML.
func (t *Tables) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return nil, eris.Wrap(err, "calibration: encode yaml")
	}
	return out, nil
}

// Hash returns a short SHA-256 of the tables so stored scores can be traced
// back to the exact constants that produced them.
func (t *Tables) Hash() string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16])
}

// Validate checks that the tables are internally consistent.
func (t *Tables) Validate() error {
	var errs []string

	if strings.TrimSpace(t.ModelVersion) == "" {
		errs = append(errs, "model_version must be set")
	}
	if len(t.QuestionConstructs) == 0 {
		errs = append(errs, "question_constructs must not be empty")
	}
	if len(t.LikertScale) == 0 {
		errs = append(errs, "likert_scale must not be empty")
	}
	if t.LCAMaxRawSum <= 0 {
		errs = append(errs, "lca_max_raw_sum must be > 0")
	}

	for q := range t.LCAPoints {
		if c, ok := t.QuestionConstructs[q]; !ok || c != ConstructLoanConsequence {
			errs = append(errs, fmt.Sprintf("lca_points question %s is not mapped to loan_consequence_awareness", q))
		}
	}

	for name, n := range t.PopulationNorms {
		if n.Std <= 0 {
			errs = append(errs, fmt.Sprintf("population_norms.%s.std must be > 0", name))
		}
	}
	if t.DefaultNorm.Std <= 0 {
		errs = append(errs, "default_norm.std must be > 0")
	}

	// Weights.
	var sum float64
	for cat, w := range t.CategoryWeights {
		if !isCategory(cat) {
			errs = append(errs, fmt.Sprintf("category_weights has unknown category %q", cat))
		}
		if w < 0 {
			errs = append(errs, fmt.Sprintf("category_weights.%s must be >= 0", cat))
		}
		sum += w
	}
	if sum <= 0 {
		errs = append(errs, "category weight sum must be > 0")
	}
	for cat := range t.Categories {
		if !isCategory(cat) {
			errs = append(errs, fmt.Sprintf("categories has unknown category %q", cat))
		}
	}

	// Countries.
	seen := make(map[string]string, len(t.CountryNorms))
	for name, n := range t.CountryNorms {
		if n.Std <= 0 {
			errs = append(errs, fmt.Sprintf("country_norms.%s.std must be > 0", name))
		}
		folded := cases.Fold().String(strings.TrimSpace(name))
		if prev, dup := seen[folded]; dup {
			errs = append(errs, fmt.Sprintf("country_norms %q and %q collide", prev, name))
		}
		seen[folded] = name
	}
	if _, ok := t.CountryNorms[t.FallbackCountry]; !ok {
		errs = append(errs, fmt.Sprintf("fallback_country %q has no country_norms entry", t.FallbackCountry))
	}
	if t.ZRange <= 0 {
		errs = append(errs, "z_range must be > 0")
	}

	// Risk thresholds.
	if len(t.RiskThresholds) == 0 {
		errs = append(errs, "risk_thresholds must not be empty")
	}
	prev := math.Inf(1)
	for i, th := range t.RiskThresholds {
		if th.MinPercentile < 0 || th.MinPercentile > 1 {
			errs = append(errs, fmt.Sprintf("risk_thresholds[%d] min_percentile must be in [0,1]", i))
		}
		if th.MinPercentile > prev {
			errs = append(errs, "risk_thresholds must be sorted by descending min_percentile")
		}
		prev = th.MinPercentile
	}

	// Crisis ranking.
	if !slices.Contains(t.Crisis.Items, t.Crisis.Lender) || !slices.Contains(t.Crisis.Items, t.Crisis.Skip) {
		errs = append(errs, "crisis items must include the lender and skip items")
	}

	if len(t.InternalLocusKeywords) != 0 && len(t.InternalLocusKeywords) != len(t.InternalLocusStatements) {
		errs = append(errs, "internal_locus_keywords must have one entry per internal_locus_statements")
	}

	if len(errs) > 0 {
		return eris.Errorf("calibration: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func isCategory(c model.Category) bool {
	for _, known := range model.Categories {
		if c == known {
			return true
		}
	}
	return false
}
