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
	"bytes"
	"sort"
	"strings"
)

// EmissionContext accumulates the four generated-code regions as explicit
// buffers so the per-region ordering rules stay mechanically checkable:
// registration, initialization and refresh are filled in declaration order,
// the diagnostics dump alone is sorted by name. Built incrementally, read
// once by the final assembly.
type EmissionContext struct {
	Registration   bytes.Buffer
	Initialization bytes.Buffer
	Refresh        bytes.Buffer
	Diagnostics    bytes.Buffer

	defaults     map[string]string // name -> verbatim default expression
	dynamicNames []string          // declaration order
}

func newEmissionContext() *EmissionContext {
	return &EmissionContext{defaults: make(map[string]string)}
}

// track records one dynamic parameter as it is emitted.
func (ctx *EmissionContext) track(p ClassifiedParameter) {
	ctx.dynamicNames = append(ctx.dynamicNames, p.Name)
	if p.HasDefault {
		ctx.defaults[p.Name] = p.Default
	}
}

// sortedNames returns the dynamic parameter names in lexicographic order,
// the one deliberate departure from declaration order (the diagnostic dump
// is sorted so a human can scan it).
func (ctx *EmissionContext) sortedNames() []string {
	names := make([]string, len(ctx.dynamicNames))
	copy(names, ctx.dynamicNames)
	sort.Strings(names)
	return names
}

// padWidth is the length of the longest dynamic parameter name; the
// diagnostic dump right-pads every name to this width.
func (ctx *EmissionContext) padWidth() int {
	width := 0
	for _, name := range ctx.dynamicNames {
		if len(name) > width {
			width = len(name)
		}
	}
	return width
}

func pad(name string, width int) string {
	return name + strings.Repeat(" ", width-len(name))
}

// region returns a buffer's content without a trailing newline, ready for
// substitution into an insertion-point line of the skeleton.
func region(buf *bytes.Buffer) string {
	return strings.TrimSuffix(buf.String(), "\n")
}

// assemble substitutes the named insertion points of a target's skeleton.
// This is purely textual: no region content is evaluated or re-parsed.
func assemble(skeleton, fn, static string, ctx *EmissionContext) string {
	r := strings.NewReplacer(
		"{{NAME}}", fn,
		"{{STATIC}}", static,
		"{{REGISTRATION}}", region(&ctx.Registration),
		"{{INITIALIZATION}}", region(&ctx.Initialization),
		"{{REFRESH}}", region(&ctx.Refresh),
		"{{DIAGNOSTICS}}", region(&ctx.Diagnostics),
	)
	return r.Replace(skeleton)
}
