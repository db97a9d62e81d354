package model

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"
)

// NotApplicablePrefix marks an answer the respondent opted out of.
const NotApplicablePrefix = "N/A"

// Responses maps a question id to the raw answer string. Ranking answers are
// JSON-encoded ordered lists.
type Responses map[string]string

// UnmarshalJSON accepts an object whose values are strings, numbers or arrays.
// Non-string values keep their raw JSON text so ranking answers can be
// submitted either pre-encoded or as a native list. Nulls are dropped.
func (r *Responses) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return eris.New("model: responses: invalid json")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return eris.New("model: responses: expected a JSON object")
	}

	out := make(Responses)
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
		case gjson.String:
			out[key.String()] = value.String()
		default:
			out[key.String()] = value.Raw
		}
		return true
	})
	*r = out
	return nil
}

// Answer returns the trimmed, NFC-normalized answer for a question.
func (r Responses) Answer(id string) (string, bool) {
	raw, ok := r[id]
	if !ok {
		return "", false
	}
	return NormalizeAnswer(raw), true
}

// IDs returns question ids in lexical order so aggregation is deterministic.
func (r Responses) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NormalizeAnswer trims whitespace and composes unicode so that visually
// identical option labels compare equal.
func NormalizeAnswer(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsNotApplicable reports whether the respondent skipped the item.
func IsNotApplicable(answer string) bool {
	return strings.HasPrefix(strings.TrimSpace(answer), NotApplicablePrefix)
}

// IsDemographic reports whether a question id belongs to the demographic
// section, which is never scored.
func IsDemographic(id string) bool {
	return strings.HasPrefix(id, "dem")
}

// Submission is one stored questionnaire submission.
type Submission struct {
	ID        string    `json:"id"`
	Country   string    `json:"country"`
	Responses Responses `json:"responses"`
	CreatedAt time.Time `json:"created_at"`
}
