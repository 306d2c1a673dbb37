package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	starlarkjson "go.starlark.net/lib/json"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const (
	starlarkResourceFunc = "deny"
	starlarkStackFunc    = "deny_stack"
)

// starlarkEvaluator calls a deny function of an executed, frozen module.
type starlarkEvaluator struct {
	name     string
	fn       *starlark.Function
	kind     Kind
	timeout  time.Duration
	maxSteps uint64
	logger   zerolog.Logger
}

// compileStarlark executes the module once and resolves the entry point.
// The policy kind is taken from the function the module defines when it is
// not set already.
func compileStarlark(p *Policy, timeout time.Duration, maxSteps uint64, logger zerolog.Logger) (*starlarkEvaluator, error) {
	thread := newThread(p.Name, logger, maxSteps)

	globals, err := starlark.ExecFile(thread, moduleFile(p), p.Source, predeclared())
	if err != nil {
		return nil, fmt.Errorf("failed to load starlark policy: %w", err)
	}

	resourceFn, _ := globals[starlarkResourceFunc].(*starlark.Function)
	stackFn, _ := globals[starlarkStackFunc].(*starlark.Function)

	kind := p.Kind
	if kind == "" {
		switch {
		case resourceFn != nil && stackFn != nil:
			return nil, fmt.Errorf("policy defines both %s and %s; set kind explicitly", starlarkResourceFunc, starlarkStackFunc)
		case resourceFn != nil:
			kind = KindResource
		case stackFn != nil:
			kind = KindStack
		default:
			return nil, fmt.Errorf("policy defines neither %s nor %s", starlarkResourceFunc, starlarkStackFunc)
		}
	}

	fn := resourceFn
	want := 1
	if kind == KindStack {
		fn = stackFn
	}
	if fn == nil {
		return nil, fmt.Errorf("%s policy must define %s", kind, entryPoint(kind))
	}
	if kind == KindStack && fn.NumParams() == 2 {
		want = 2
	}
	if fn.NumParams() != want {
		return nil, fmt.Errorf("%s must take %d parameter(s), got %d", entryPoint(kind), want, fn.NumParams())
	}

	return &starlarkEvaluator{
		name:     p.Name,
		fn:       fn,
		kind:     kind,
		timeout:  timeout,
		maxSteps: maxSteps,
		logger:   logger,
	}, nil
}

func entryPoint(kind Kind) string {
	if kind == KindStack {
		return starlarkStackFunc
	}
	return starlarkResourceFunc
}

// Eval calls deny(resource) or deny_stack(resources[, graph]) with a fresh
// thread, cancelled on timeout or when ctx is done.
func (s *starlarkEvaluator) Eval(ctx context.Context, input interface{}) ([]interface{}, error) {
	in, ok := input.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected policy input %T", input)
	}

	var args starlark.Tuple
	if s.kind == KindStack {
		resources, err := toStarlarkValue(in["resources"])
		if err != nil {
			return nil, fmt.Errorf("failed to convert resources: %w", err)
		}
		args = append(args, resources)
		if s.fn.NumParams() == 2 {
			graph, err := toStarlarkValue(in["graph"])
			if err != nil {
				return nil, fmt.Errorf("failed to convert graph: %w", err)
			}
			args = append(args, graph)
		}
	} else {
		resource, err := toStarlarkValue(in["resource"])
		if err != nil {
			return nil, fmt.Errorf("failed to convert resource: %w", err)
		}
		args = append(args, resource)
	}

	config, err := toStarlarkValue(in["config"])
	if err != nil {
		return nil, fmt.Errorf("failed to convert config: %w", err)
	}

	thread := newThread(s.name, s.logger, s.maxSteps)
	thread.SetLocal("config", config)

	evalCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(evalCtx, func() {
		thread.Cancel(evalCtx.Err().Error())
	})
	defer stop()

	result, err := starlark.Call(thread, s.fn, args, nil)
	if err != nil {
		if ctxErr := evalCtx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("starlark execution cancelled after %v: %w", s.timeout, ctxErr)
		}
		return nil, fmt.Errorf("starlark execution failed: %w", err)
	}

	return denyEntries(result)
}

// denyEntries accepts None, a single string or dict, or a list of them.
func denyEntries(v starlark.Value) ([]interface{}, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String, *starlark.Dict, *starlarkstruct.Struct:
		entry, err := fromStarlarkValue(val)
		if err != nil {
			return nil, err
		}
		return []interface{}{entry}, nil
	case *starlark.List, starlark.Tuple:
		out, err := fromStarlarkValue(val)
		if err != nil {
			return nil, err
		}
		return out.([]interface{}), nil
	default:
		return nil, fmt.Errorf("deny must return a list, got %s", v.Type())
	}
}

// newThread returns a thread whose print goes to the debug log. maxSteps of
// zero means no step limit.
func newThread(name string, logger zerolog.Logger, maxSteps uint64) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Debug().Str("policy", name).Msg(msg)
		},
	}
	if maxSteps > 0 {
		thread.SetMaxExecutionSteps(maxSteps)
	}
	return thread
}

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		"json":   starlarkjson.Module,
		"config": starlark.NewBuiltin("config", builtinConfig),
	}
}

// builtinConfig implements config(key, default=None), reading the policy config.
func builtinConfig(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key string
	var def starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key, "default?", &def); err != nil {
		return nil, err
	}

	cfg, ok := thread.Local("config").(*starlark.Dict)
	if !ok {
		return def, nil
	}
	v, found, err := cfg.Get(starlark.String(key))
	if err != nil {
		return nil, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

func moduleFile(p *Policy) string {
	if p.Path != "" {
		return p.Path
	}
	return p.Name + ".star"
}

// toStarlarkValue converts a JSON-shaped Go value to a Starlark value.
// Dict keys are inserted in sorted order so iteration is deterministic.
func toStarlarkValue(v interface{}) (starlark.Value, error) {
	return goToStarlark(v, "$")
}

func goToStarlark(v interface{}, path string) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(val), nil
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case uint64:
		return starlark.MakeUint64(val), nil
	case float64:
		// Integral floats come from JSON numbers; keep them ints so
		// policies can index and compare with int literals.
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return starlark.MakeInt64(int64(val)), nil
		}
		return starlark.Float(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return starlark.MakeInt64(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", path, val)
		}
		return starlark.Float(f), nil
	case []interface{}:
		elems := make([]starlark.Value, 0, len(val))
		for i, item := range val {
			elem, err := goToStarlark(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return starlark.NewList(elems), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		dict := starlark.NewDict(len(keys))
		for _, k := range keys {
			elem, err := goToStarlark(val[k], path+"."+k)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(k), elem); err != nil {
				return nil, err
			}
		}
		return dict, nil
	}
	return nil, fmt.Errorf("%s: cannot convert %T to starlark", path, v)
}

// fromStarlarkValue converts a deny result to JSON-shaped Go values.
// Lists, tuples and sets become slices; dicts and structs become maps.
func fromStarlarkValue(v starlark.Value) (interface{}, error) {
	return starlarkToGo(v, "$")
}

func starlarkToGo(v starlark.Value, path string) (interface{}, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.String:
		return string(val), nil
	case starlark.Int:
		if n, ok := val.Int64(); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%s: integer %s overflows int64", path, val)
	case starlark.Float:
		return float64(val), nil
	case starlark.IterableMapping:
		out := make(map[string]interface{}, starlark.Len(val))
		for _, kv := range val.Items() {
			key, ok := starlark.AsString(kv[0])
			if !ok {
				return nil, fmt.Errorf("%s: dict key %s is not a string", path, kv[0])
			}
			elem, err := starlarkToGo(kv[1], path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = elem
		}
		return out, nil
	case starlark.Iterable:
		out := []interface{}{}
		iter := val.Iterate()
		defer iter.Done()
		var item starlark.Value
		for i := 0; iter.Next(&item); i++ {
			elem, err := starlarkToGo(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case starlark.HasAttrs:
		out := make(map[string]interface{})
		for _, name := range val.AttrNames() {
			attr, err := val.Attr(name)
			if err != nil || attr == nil {
				continue
			}
			elem, err := starlarkToGo(attr, path+"."+name)
			if err != nil {
				return nil, err
			}
			out[name] = elem
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: cannot convert starlark %s", path, v.Type())
}
