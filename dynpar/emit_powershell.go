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
)

// psSkeleton is the fixed function shell for the powershell target. The
// {{...}} markers are the named insertion points; assembly is textual
// substitution only. Callers byte-compare generated output, so every
// convention here (separators, comment markers, indentation) is part of the
// contract and pinned by tests.
const psSkeleton = `function {{NAME}}
{
    [CmdletBinding()]
    param
    (
{{STATIC}}
    )

    dynamicparam
    {
        # container for the dynamically created parameters:
        $paramDictionary = New-Object -TypeName System.Management.Automation.RuntimeDefinedParameterDictionary

{{REGISTRATION}}

        # hand the finished dictionary back to the runtime:
        $paramDictionary
    }

    begin
    {
        # copy bound values (or defaults) into local variables once per call:
{{INITIALIZATION}}
    }

    process
    {
        # re-copy pipeline-bound values once per pipeline item:
{{REFRESH}}

{{DIAGNOSTICS}}
    }

    end
    {
    }
}
`

const psIndent = "        " // body indentation inside dynamicparam/begin/process

// emitPowerShell renders all four regions plus the static parameter list
// and assembles the final function source.
func emitPowerShell(t Target, fn string, c *Classification, rep *Reporter) string {
	ctx := newEmissionContext()

	var static []string
	for _, node := range c.Static {
		static = append(static, psIndent+node.Extent)
	}

	for _, p := range c.Dynamic {
		ctx.track(p)
		emitPSRegistration(ctx, p)
		emitPSInitialization(ctx, p)
		if p.PipelineAware {
			fmt.Fprintf(&ctx.Refresh,
				"%sif ($PSBoundParameters.ContainsKey('%s')) { $%s = $PSBoundParameters['%s'] }\n",
				psIndent, p.Name, p.Name, p.Name)
		}
	}
	emitPSDiagnostics(ctx)

	return assemble(psSkeleton, fn, strings.Join(static, ",\n"), ctx)
}

// emitPSRegistration emits one dynamic parameter's registration fragment,
// bracketed by fixed comment markers. The conditional guard is omitted
// entirely for the always-true sentinel.
func emitPSRegistration(ctx *EmissionContext, p ClassifiedParameter) {
	fmt.Fprintf(&ctx.Registration, "%s#region START dynamic parameter $%s (do not modify)\n", psIndent, p.Name)

	indent := psIndent
	guarded := p.Condition != ""
	if guarded {
		fmt.Fprintf(&ctx.Registration, "%sif (%s)\n%s{\n", psIndent, p.Condition, psIndent)
		indent += "    "
	}

	fmt.Fprintf(&ctx.Registration,
		"%s$attributeCollection = New-Object -TypeName 'System.Collections.ObjectModel.Collection[System.Attribute]'\n",
		indent)

	for _, ann := range p.Annotations {
		emitPSAttribute(ctx, indent, ann)
	}
	if !p.HasParameter {
		// the runtime requires at least one ParameterAttribute per entry
		fmt.Fprintf(&ctx.Registration,
			"%s$attrib = New-Object -TypeName System.Management.Automation.ParameterAttribute\n", indent)
		fmt.Fprintf(&ctx.Registration, "%s$attributeCollection.Add($attrib)\n", indent)
	}

	fmt.Fprintf(&ctx.Registration,
		"%s$dynParam = New-Object -TypeName System.Management.Automation.RuntimeDefinedParameter -ArgumentList ('%s', [%s], $attributeCollection)\n",
		indent, p.Name, p.Type)
	fmt.Fprintf(&ctx.Registration, "%s$paramDictionary.Add('%s', $dynParam)\n", indent, p.Name)

	if guarded {
		fmt.Fprintf(&ctx.Registration, "%s}\n", psIndent)
	}
	fmt.Fprintf(&ctx.Registration, "%s#endregion END dynamic parameter $%s\n", psIndent, p.Name)
}

// emitPSAttribute echoes one generic annotation as an attribute constructor:
// positional arguments comma-joined verbatim in the argument list, named
// arguments as property assignments, a bare flag as "= $true".
func emitPSAttribute(ctx *EmissionContext, indent string, ann AnnotationNode) {
	typeName := "System.Management.Automation." + ann.Tag + "Attribute"
	if pos := ann.Positional(); len(pos) > 0 {
		fmt.Fprintf(&ctx.Registration, "%s$attrib = New-Object -TypeName %s -ArgumentList %s\n",
			indent, typeName, strings.Join(pos, ", "))
	} else {
		fmt.Fprintf(&ctx.Registration, "%s$attrib = New-Object -TypeName %s\n", indent, typeName)
	}
	for _, arg := range ann.Named() {
		value := arg.Value
		if arg.Omitted {
			value = "$true"
		}
		fmt.Fprintf(&ctx.Registration, "%s$attrib.%s = %s\n", indent, arg.Name, value)
	}
	fmt.Fprintf(&ctx.Registration, "%s$attributeCollection.Add($attrib)\n", indent)
}

// emitPSInitialization emits exactly one binding statement: the bound value
// if the caller supplied one, else the captured default, else $null.
func emitPSInitialization(ctx *EmissionContext, p ClassifiedParameter) {
	fallback := "$null"
	if d, ok := ctx.defaults[p.Name]; ok {
		fallback = d
	}
	fmt.Fprintf(&ctx.Initialization,
		"%sif ($PSBoundParameters.ContainsKey('%s')) { $%s = $PSBoundParameters['%s'] } else { $%s = %s }\n",
		psIndent, p.Name, p.Name, p.Name, p.Name, fallback)
}

// emitPSDiagnostics emits the single structured dump of every dynamic
// parameter, lexicographically sorted and right-padded for alignment.
func emitPSDiagnostics(ctx *EmissionContext) {
	if len(ctx.dynamicNames) == 0 {
		return
	}
	width := ctx.padWidth()
	fmt.Fprintf(&ctx.Diagnostics, "%sWrite-Verbose -Message @\"\n", psIndent)
	fmt.Fprintf(&ctx.Diagnostics, "current dynamic parameter values:\n")
	for _, name := range ctx.sortedNames() {
		fmt.Fprintf(&ctx.Diagnostics, "    %s : $%s\n", pad(name, width), name)
	}
	fmt.Fprintf(&ctx.Diagnostics, "\"@\n")
}
