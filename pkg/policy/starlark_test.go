package policy

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"go.starlark.net/starlark"
)

func TestFromStarlarkValue(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    interface{}
		wantErr string
	}{
		{name: "tuple", expr: `("a", "b")`, want: []interface{}{"a", "b"}},
		{name: "empty list", expr: `[]`, want: []interface{}{}},
		{name: "struct", expr: `struct(message="m", urn="u")`, want: map[string]interface{}{"message": "m", "urn": "u"}},
		{name: "numbers", expr: `{"n": 1, "f": 1.5, "ok": True}`, want: map[string]interface{}{"n": int64(1), "f": 1.5, "ok": true}},
		{name: "nested", expr: `[{"tags": ["a"]}, None]`, want: []interface{}{map[string]interface{}{"tags": []interface{}{"a"}}, nil}},
		{name: "non-string key", expr: `{1: "x"}`, wantErr: "$: dict key 1 is not a string"},
		{name: "error path", expr: `[{"k": {2: 1}}]`, wantErr: "$[0].k: dict key 2"},
		{name: "function", expr: `len`, wantErr: "cannot convert starlark builtin_function_or_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := starlark.Eval(&starlark.Thread{Name: "test"}, "test.star", tt.expr, predeclared())
			if err != nil {
				t.Fatalf("Eval(%s) failed: %v", tt.expr, err)
			}

			got, err := fromStarlarkValue(v)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestToStarlarkValue(t *testing.T) {
	v, err := toStarlarkValue(map[string]interface{}{
		"b":     json.Number("2"),
		"a":     []interface{}{1.0, 2.5, "x"},
		"c":     nil,
		"big":   json.Number("1e3"),
		"count": 3,
	})
	if err != nil {
		t.Fatalf("toStarlarkValue failed: %v", err)
	}
	if got, want := v.String(), `{"a": [1, 2.5, "x"], "b": 2, "big": 1000.0, "c": None, "count": 3}`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	_, err = toStarlarkValue(map[string]interface{}{"a": []interface{}{1, struct{}{}}})
	if err == nil || !strings.HasPrefix(err.Error(), "$.a[1]: cannot convert struct {}") {
		t.Errorf("Expected a path-qualified error, got %v", err)
	}
}
