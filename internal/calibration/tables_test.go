package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finpsych/internal/model"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_WeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range Default().CategoryWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDefault_EveryCategoryMapped(t *testing.T) {
	tables := Default()
	for _, c := range model.Categories {
		assert.NotEmpty(t, tables.Categories[c], "category %s has no constructs", c)
	}
}

func TestHash_StableAndSensitive(t *testing.T) {
	a := Default().Hash()
	b := Default().Hash()
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	changed := Default()
	changed.CountryNorms["Kenya"] = Norm{Mean: 60, Std: 11.2}
	assert.NotEqual(t, a, changed.Hash())
}

func TestVocabulary_Lookup(t *testing.T) {
	v := Default().LikertScale

	tests := []struct {
		name   string
		answer string
		want   float64
		ok     bool
	}{
		{"exact", "Often", 4, true},
		{"alias", "Very often", 5, true},
		{"case folded", "ALWAYS", 5, true},
		{"unknown", "Frequently", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Lookup(tt.answer)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCountryNorm(t *testing.T) {
	tables := Default()

	name, n := tables.CountryNorm("kenya ")
	assert.Equal(t, "Kenya", name)
	assert.InDelta(t, 58.4, n.Mean, 1e-9)

	otherName, other := tables.CountryNorm("Other")
	unknownName, unknown := tables.CountryNorm("Atlantis")
	emptyName, empty := tables.CountryNorm("")
	assert.Equal(t, "Other", otherName)
	assert.Equal(t, otherName, unknownName)
	assert.Equal(t, other, unknown)
	assert.Equal(t, "Other", emptyName)
	assert.Equal(t, other, empty)
}

func TestNormFor_Fallback(t *testing.T) {
	tables := Default()
	assert.Equal(t, Norm{Mean: 3, Std: 1}, tables.NormFor("not_a_construct"))
	assert.InDelta(t, 3.82, tables.NormFor("payment_history").Mean, 1e-9)
}

func TestClone_IsIndependent(t *testing.T) {
	orig := Default()
	c := orig.Clone()
	c.QuestionConstructs["lca6"] = "loan_consequence_awareness"
	c.LCAPoints["lca1"]["A)"] = 0
	c.Categories[model.CategoryCharacter][0] = "changed"

	_, ok := orig.QuestionConstructs["lca6"]
	assert.False(t, ok)
	assert.InDelta(t, 3.0, orig.LCAPoints["lca1"]["A)"], 1e-9)
	assert.Equal(t, "payment_history", orig.Categories[model.CategoryCharacter][0])
	assert.Equal(t, orig.Hash(), Default().Hash())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := []byte(`
model_version: finpsych-cwi-test
country_norms:
  Zambia:
    mean: 52
    std: 13
risk_thresholds:
  - band: LOW
    min_percentile: 0.8
  - band: VERY_HIGH
    min_percentile: 0
`)
	tables, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "finpsych-cwi-test", tables.ModelVersion)
	assert.Contains(t, tables.CountryNorms, "Zambia")
	assert.Contains(t, tables.CountryNorms, "Kenya", "default countries survive the overlay")
	assert.Len(t, tables.RiskThresholds, 2)
	assert.NotEmpty(t, tables.QuestionConstructs)
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unsorted thresholds", "risk_thresholds:\n  - {band: HIGH, min_percentile: 0.1}\n  - {band: LOW, min_percentile: 0.9}\n", "descending"},
		{"zero std", "country_norms:\n  Kenya: {mean: 50, std: 0}\n", "country_norms.Kenya.std"},
		{"negative weight", "category_weights:\n  capital: -1\n", "category_weights.capital"},
		{"unknown category", "category_weights:\n  courage: 0.2\n", "unknown category"},
		{"missing fallback", "fallback_country: Narnia\n", "fallback_country"},
		{"empty version", "model_version: \"\"\n", "model_version"},
		{"bad yaml", "country_norms: [", "decode yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModelVersion, tables.ModelVersion)

	path := filepath.Join(t.TempDir(), "calibration.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model_version: finpsych-cwi-file\n"), 0o644))
	tables, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "finpsych-cwi-file", tables.ModelVersion)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	out, err := Default().Marshal()
	require.NoError(t, err)

	tables, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, Default().Hash(), tables.Hash())
}
