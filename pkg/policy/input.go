package policy

import (
	"bytes"
	"encoding/json"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// toInput converts v to JSON-shaped values (maps, slices, strings, bools,
// json.Number) shared by the Rego and Starlark evaluators.
func toInput(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// resourceInput returns r with NaN and infinite property values replaced by
// their string forms. Custom timeouts encode the same way on their own.
func resourceInput(r analyzer.Resource) analyzer.Resource {
	if r.Properties != nil {
		r.Properties = analyzer.JSONSafe(r.Properties).(map[string]interface{})
	}
	if r.Provider != nil {
		p := *r.Provider
		if p.Properties != nil {
			p.Properties = analyzer.JSONSafe(p.Properties).(map[string]interface{})
		}
		r.Provider = &p
	}
	return r
}
