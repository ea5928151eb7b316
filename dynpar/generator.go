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

import "fmt"

// Options configures a single generation pass. Everything is an operation
// parameter; there are no configuration files.
type Options struct {
	// FunctionName is the name of the generated function. Empty selects the
	// target's default.
	FunctionName string
	// Target selects the output language ("powershell" or "go"); empty
	// selects powershell.
	Target string
}

// Result is the outcome of one generation pass: the complete function
// source and the warning side channel. The source is always best-effort
// complete when err is nil, even if Diagnostics is non-empty.
type Result struct {
	Source       string
	FunctionName string
	Diagnostics  []Diagnostic
}

// Generate runs the whole parse → classify → emit → assemble pipeline on
// src. The only fatal conditions are structural: no param block, an
// unparseable declaration list, an unknown target, or an invalid function
// name. Everything else degrades to warnings in Result.Diagnostics.
func Generate(src string, opts Options) (*Result, error) {
	block, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return GenerateBlock(block, opts)
}

// GenerateBlock is Generate for callers that already hold a parsed block.
func GenerateBlock(block *ParamBlock, opts Options) (*Result, error) {
	target, err := GetTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	fn := opts.FunctionName
	if fn == "" {
		fn = target.DefaultFunctionName
	}
	if !validFunctionName(fn) {
		return nil, fmt.Errorf("invalid function name %q", fn)
	}

	rep := &Reporter{}
	c := Classify(block, rep)
	source := target.emit(target, fn, c, rep)

	return &Result{
		Source:       source,
		FunctionName: fn,
		Diagnostics:  rep.Diagnostics(),
	}, nil
}

// validFunctionName accepts identifiers plus the host's Verb-Noun form.
func validFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentByte(c) || (c == '-' && i > 0 && i < len(name)-1) {
			continue
		}
		return false
	}
	return true
}
