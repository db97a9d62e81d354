package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/finpsych/internal/model"
)

// readSubmissions reads a JSON file ("-" for stdin) holding one submission
// or an array of them.
func readSubmissions(path string, stdin io.Reader) ([]model.Submission, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return decodeSubmissions(data)
}

// decodeSubmissions accepts either full submission objects
// ({"id", "country", "responses"}) or bare question-id to answer maps.
func decodeSubmissions(data []byte) ([]model.Submission, error) {
	if !gjson.ValidBytes(data) {
		return nil, eris.New("decode submissions: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, eris.New("decode submissions: expected an object or an array of objects")
	}

	subs := make([]model.Submission, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, eris.Errorf("decode submissions: item %d is not an object", i)
		}

		var sub model.Submission
		if item.Get("responses").IsObject() {
			if err := json.Unmarshal([]byte(item.Raw), &sub); err != nil {
				return nil, eris.Wrapf(err, "decode submissions: item %d", i)
			}
		} else if err := json.Unmarshal([]byte(item.Raw), &sub.Responses); err != nil {
			return nil, eris.Wrapf(err, "decode submissions: item %d", i)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
