// Copyright 2026 dynpar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dynpar

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Invoker is a go-target function compiled into the running process.
type Invoker struct {
	fn reflect.Value
}

// Load compiles go-target output with the embedded interpreter and returns
// the generated function as an invocable unit. Only stdlib symbols are
// available to the generated code, which is all the go target emits.
func Load(source, functionName string) (*Invoker, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load interpreter stdlib: %w", err)
	}
	if _, err := i.Eval(source); err != nil {
		return nil, fmt.Errorf("compile generated source: %w", err)
	}
	v, err := i.Eval("dynparam." + functionName)
	if err != nil {
		return nil, fmt.Errorf("resolve generated function %q: %w", functionName, err)
	}
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("generated symbol %q is not a function", functionName)
	}
	return &Invoker{fn: v}, nil
}

// Func exposes the raw function value for generated functions with static
// parameters, whose signatures Invoke cannot know.
func (in *Invoker) Func() reflect.Value {
	return in.fn
}

// Invoke calls a generated function that has no static parameters. Nil maps
// are replaced by empty ones so the call never panics on a nil argument.
func (in *Invoker) Invoke(bound map[string]any, pipeline []map[string]any) (map[string]any, error) {
	if in.fn.Type().NumIn() != 2 {
		return nil, fmt.Errorf("generated function has static parameters, call Func() directly")
	}
	if bound == nil {
		bound = map[string]any{}
	}
	if pipeline == nil {
		pipeline = []map[string]any{}
	}
	out := in.fn.Call([]reflect.Value{reflect.ValueOf(bound), reflect.ValueOf(pipeline)})
	values, ok := out[0].Interface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("generated function returned %T, want map[string]any", out[0].Interface())
	}
	return values, nil
}
