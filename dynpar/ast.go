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

// Package dynpar generates the full source of a function whose parameters
// can be conditionally present, from a declarative param(...) block.
//
// The pipeline is a single pass: Parse produces the declaration list,
// Classify partitions it into static and dynamic parameters, and a Target
// emits the four generated-code regions and assembles the final function
// source. Embedded condition and default-value expressions are opaque text;
// they are carried through verbatim and never evaluated here.
package dynpar

// Argument is a single annotation argument. Exactly one form holds:
// positional (Name == ""), named with an explicit value, or a bare named
// flag (Omitted == true, which implies the value "true").
type Argument struct {
	Name    string // empty for positional arguments
	Value   string // verbatim expression text, empty when Omitted
	Omitted bool   // bare named flag without an explicit value
}

// AnnotationNode is one bracketed annotation on a parameter declaration.
//
// An annotation written without an argument list, such as [string] or
// [Guid], is a type constraint. HasArgs distinguishes [Parameter()] from a
// bare type literal.
type AnnotationNode struct {
	Tag     string
	Args    []Argument
	HasArgs bool
}

// IsTypeConstraint reports whether the annotation is a bare type literal.
func (a *AnnotationNode) IsTypeConstraint() bool {
	return !a.HasArgs
}

// Positional returns the verbatim texts of the positional arguments,
// in order.
func (a *AnnotationNode) Positional() []string {
	var out []string
	for _, arg := range a.Args {
		if arg.Name == "" {
			out = append(out, arg.Value)
		}
	}
	return out
}

// Named returns the named arguments (explicit and bare flags), in order.
func (a *AnnotationNode) Named() []Argument {
	var out []Argument
	for _, arg := range a.Args {
		if arg.Name != "" {
			out = append(out, arg)
		}
	}
	return out
}

// ParameterNode is one declaration inside the param(...) block, immutable
// once parsed.
type ParameterNode struct {
	Name        string // identifier without the optional $ sigil
	Annotations []AnnotationNode
	Default     string // verbatim default expression
	HasDefault  bool
	Extent      string // verbatim source text of the whole declaration
}

// ParamBlock is the parsed parameter block: the ordered declaration list.
type ParamBlock struct {
	Params []ParameterNode
}
