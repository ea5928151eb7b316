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

import "strings"

const (
	// markerTag is the reserved annotation that reclassifies a parameter as
	// dynamic; its first positional argument is the binding condition.
	markerTag = "Conditional"
	// parameterTag is the generic annotation the emitter synthesizes when
	// the declaration did not supply one explicitly.
	parameterTag = "Parameter"
	// untypedFallback is the resolved type of a dynamic parameter without a
	// type constraint.
	untypedFallback = "Object"
)

// pipelineArgNames are the annotation named-argument names that mark a
// parameter as pipeline-sourced.
var pipelineArgNames = map[string]bool{
	"valuefrompipeline":               true,
	"valuefrompipelinebypropertyname": true,
}

// ClassifiedParameter is the derived view of a dynamic declaration: the
// stripped binding condition, the resolved type, the captured default, the
// generic annotations to echo into the registration region, and the flags
// the emitter needs.
type ClassifiedParameter struct {
	Name          string
	Condition     string // "" is the always-true sentinel: no guard is emitted
	Type          string
	Untyped       bool // Type is the untyped fallback
	Default       string
	HasDefault    bool
	PipelineAware bool
	HasParameter  bool             // an explicit Parameter annotation was supplied
	Annotations   []AnnotationNode // generic annotations in declaration order
}

// Classification partitions the declaration list. Static parameters keep
// their verbatim extents; dynamic parameters are reduced to the derived
// view. Both lists preserve declaration order and no node appears in both.
type Classification struct {
	Static  []ParameterNode
	Dynamic []ClassifiedParameter
}

// Classify walks the declaration list once. A declaration is dynamic iff it
// carries the conditional-inclusion marker; only the first marker on a
// declaration is honored, later ones are dropped. All warnings (reserved
// name collisions, untyped dynamics, malformed or vacuous conditions) go
// through rep and never abort classification.
func Classify(block *ParamBlock, rep *Reporter) *Classification {
	c := &Classification{}
	for _, node := range block.Params {
		if reserved, ok := reservedCollision(node.Name); ok {
			rep.warnf(CodeReservedCollision, node.Name,
				"name abbreviates the common parameter %q", reserved)
		}
		if cp, ok := classifyDynamic(node, rep); ok {
			c.Dynamic = append(c.Dynamic, cp)
		} else {
			c.Static = append(c.Static, node)
		}
	}
	return c
}

// classifyDynamic derives the dynamic view of node, reporting ok=false for
// static declarations. Annotation handling is a closed switch over the three
// annotation kinds: the conditional-inclusion marker, bare type constraints,
// and generic annotations.
func classifyDynamic(node ParameterNode, rep *Reporter) (ClassifiedParameter, bool) {
	cp := ClassifiedParameter{
		Name:       node.Name,
		Default:    node.Default,
		HasDefault: node.HasDefault,
	}

	seenMarker := false
	for _, ann := range node.Annotations {
		switch {
		case strings.EqualFold(ann.Tag, markerTag):
			if !seenMarker {
				seenMarker = true
				cp.Condition = extractCondition(node.Name, ann, rep)
			}
		case ann.IsTypeConstraint():
			if cp.Type == "" {
				cp.Type = ann.Tag
			}
		default:
			cp.Annotations = append(cp.Annotations, ann)
			if strings.EqualFold(ann.Tag, parameterTag) {
				cp.HasParameter = true
			}
		}
		// Pipeline-source flags can appear on any annotation; the first one
		// registers the parameter, re-registration is a no-op.
		for _, arg := range ann.Named() {
			if pipelineArgNames[strings.ToLower(arg.Name)] {
				cp.PipelineAware = true
			}
		}
	}

	if !seenMarker {
		return ClassifiedParameter{}, false
	}
	if cp.Type == "" {
		cp.Type = untypedFallback
		cp.Untyped = true
		rep.warnf(CodeUntypedParameter, node.Name,
			"no type constraint, falling back to [%s]", untypedFallback)
	}
	return cp, true
}

// extractCondition pulls the binding condition out of the marker annotation.
// The raw argument wraps the predicate in one pair of braces which is
// stripped textually; the predicate itself stays opaque. An empty result is
// the always-true sentinel. A marker without a condition argument degrades
// to always-true rather than failing. A condition that is only whitespace
// after stripping is preserved literally and flagged, not collapsed.
func extractCondition(param string, ann AnnotationNode, rep *Reporter) string {
	pos := ann.Positional()
	if len(pos) == 0 {
		rep.warnf(CodeMalformedConditional, param,
			"marker has no condition argument, treating as always present")
		return ""
	}
	raw := pos[0]
	cond := raw
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") && len(raw) >= 2 {
		cond = raw[1 : len(raw)-1]
	}
	if cond != "" && strings.TrimSpace(cond) == "" {
		rep.warnf(CodeVacuousCondition, param,
			"condition is whitespace only, emitting it verbatim")
	}
	return cond
}
