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
	"strings"

	"golang.org/x/tools/imports"
)

// goSkeleton is the function shell for the go target. The output is a
// self-contained file (package dynparam, no third-party imports) so Load can
// hand it to the embedded interpreter unchanged. Imports are resolved by the
// formatting pass, which is why the skeleton declares none.
const goSkeleton = `// Code generated by dynpar; DO NOT EDIT.

package dynparam

// runtimeParameter describes one conditionally registered parameter.
type runtimeParameter struct {
	Name       string
	Type       string
	Attributes []attribute
}

// attribute echoes one declaration annotation: verbatim positional argument
// texts plus named-argument assignments in written order.
type attribute struct {
	Tag   string
	Args  []string
	Named [][2]string
}

func {{NAME}}({{STATIC}}bound map[string]any, pipeline []map[string]any) map[string]any {
	// ---- dynamic parameter registration ----
	parameters := make(map[string]*runtimeParameter)
{{REGISTRATION}}
	_ = parameters

	values := make(map[string]any)

	// ---- parameter value initialization ----
{{INITIALIZATION}}

	for _, item := range pipeline {
		bound = item

		// ---- pipeline value refresh ----
{{REFRESH}}
	}

	// ---- diagnostic output ----
{{DIAGNOSTICS}}

	return values
}
`

// emitGo renders the four regions as Go statements and assembles the file.
// Condition and default expressions are spliced verbatim; an author
// targeting go writes Go expressions in the spec. The assembled text is run
// through the import-resolving formatter; if that fails the raw text is
// returned with a warning so the caller still gets a best-effort result.
func emitGo(t Target, fn string, c *Classification, rep *Reporter) string {
	ctx := newEmissionContext()

	var static strings.Builder
	for _, node := range c.Static {
		static.WriteString(goParamName(node.Name))
		static.WriteByte(' ')
		static.WriteString(t.goType(staticType(node)))
		static.WriteString(", ")
	}

	for _, p := range c.Dynamic {
		ctx.track(p)
		emitGoRegistration(ctx, p)
		emitGoInitialization(ctx, p)
		if p.PipelineAware {
			fmt.Fprintf(&ctx.Refresh, "\t\tif v, ok := bound[%q]; ok {\n\t\t\tvalues[%q] = v\n\t\t}\n",
				p.Name, p.Name)
		}
	}
	emitGoDiagnostics(ctx)

	source := assemble(goSkeleton, fn, static.String(), ctx)
	formatted, err := imports.Process("dynparam.go", []byte(source), nil)
	if err != nil {
		rep.warnf(CodeFormatFailed, "", "generated source did not format: %v", err)
		return source
	}
	return string(formatted)
}

// staticType resolves a static declaration's type constraint, if any.
func staticType(node ParameterNode) string {
	for _, ann := range node.Annotations {
		if ann.IsTypeConstraint() {
			return ann.Tag
		}
	}
	return untypedFallback
}

// goParamName lowercases the leading rune so declared names become
// idiomatic Go parameter names.
func goParamName(name string) string {
	return strings.ToLower(name[:1]) + name[1:]
}

func emitGoRegistration(ctx *EmissionContext, p ClassifiedParameter) {
	fmt.Fprintf(&ctx.Registration, "\t// >>> dynamic parameter %s (do not modify)\n", p.Name)

	indent := "\t"
	guarded := p.Condition != ""
	if guarded {
		fmt.Fprintf(&ctx.Registration, "\tif %s {\n", p.Condition)
		indent = "\t\t"
	}

	fmt.Fprintf(&ctx.Registration, "%sattributes := []attribute{}\n", indent)
	for _, ann := range p.Annotations {
		fmt.Fprintf(&ctx.Registration, "%sattributes = append(attributes, %s)\n", indent, goAttribute(ann))
	}
	if !p.HasParameter {
		fmt.Fprintf(&ctx.Registration, "%sattributes = append(attributes, attribute{Tag: %q})\n",
			indent, parameterTag)
	}
	fmt.Fprintf(&ctx.Registration,
		"%sparameters[%q] = &runtimeParameter{Name: %q, Type: %q, Attributes: attributes}\n",
		indent, p.Name, p.Name, p.Type)

	if guarded {
		fmt.Fprintf(&ctx.Registration, "\t}\n")
	}
	fmt.Fprintf(&ctx.Registration, "\t// <<< dynamic parameter %s\n", p.Name)
}

// goAttribute renders one echoed annotation as an attribute literal. The
// verbatim argument texts are carried as string data, not as code.
func goAttribute(ann AnnotationNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "attribute{Tag: %q", ann.Tag)
	if pos := ann.Positional(); len(pos) > 0 {
		b.WriteString(", Args: []string{")
		for i, arg := range pos {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", arg)
		}
		b.WriteString("}")
	}
	if named := ann.Named(); len(named) > 0 {
		b.WriteString(", Named: [][2]string{")
		for i, arg := range named {
			if i > 0 {
				b.WriteString(", ")
			}
			value := arg.Value
			if arg.Omitted {
				value = "true"
			}
			fmt.Fprintf(&b, "{%q, %q}", arg.Name, value)
		}
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}

func emitGoInitialization(ctx *EmissionContext, p ClassifiedParameter) {
	fallback := "nil"
	if d, ok := ctx.defaults[p.Name]; ok {
		fallback = d
	}
	fmt.Fprintf(&ctx.Initialization,
		"\tif v, ok := bound[%q]; ok {\n\t\tvalues[%q] = v\n\t} else {\n\t\tvalues[%q] = %s\n\t}\n",
		p.Name, p.Name, p.Name, fallback)
}

// emitGoDiagnostics emits one fmt.Printf listing every dynamic parameter,
// sorted by name and padded to the longest name.
func emitGoDiagnostics(ctx *EmissionContext) {
	if len(ctx.dynamicNames) == 0 {
		return
	}
	width := ctx.padWidth()
	sorted := ctx.sortedNames()
	fmt.Fprintf(&ctx.Diagnostics, "\tfmt.Printf(\"dynamic parameter values:\\n\"+\n")
	for _, name := range sorted {
		fmt.Fprintf(&ctx.Diagnostics, "\t\t\"  %s : %%v\\n\"+\n", pad(name, width))
	}
	fmt.Fprintf(&ctx.Diagnostics, "\t\t\"\",\n")
	for i, name := range sorted {
		sep := ","
		if i == len(sorted)-1 {
			sep = ")"
		}
		fmt.Fprintf(&ctx.Diagnostics, "\t\tvalues[%q]%s\n", name, sep)
	}
}
