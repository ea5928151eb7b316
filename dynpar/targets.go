package dynpar

import (
	"fmt"
	"strings"
)

// Target is one output language for the generated function. The emit hook
// owns the skeleton and the per-region rendering; everything before it
// (parsing, classification) is target-independent.
type Target struct {
	Name                string
	DefaultFunctionName string
	TypeMap             map[string]string // declared type -> target type (go target only)
	emit                func(t Target, fn string, c *Classification, rep *Reporter) string
}

// PowerShellTarget emits an advanced function with a dynamicparam block.
// This is the default and the surface whose text conventions are pinned
// bit-exactly (callers diff the generated text).
func PowerShellTarget() Target {
	return Target{
		Name:                "powershell",
		DefaultFunctionName: "Test-Function",
		emit:                emitPowerShell,
	}
}

// GoTarget emits a self-contained Go source file; the result can be handed
// to Load to obtain an invocable unit without running the Go toolchain.
func GoTarget() Target {
	return Target{
		Name:                "go",
		DefaultFunctionName: "Invoke",
		TypeMap: map[string]string{
			"string":  "string",
			"int":     "int",
			"long":    "int64",
			"bool":    "bool",
			"switch":  "bool",
			"double":  "float64",
			"decimal": "float64",
			"guid":    "string",
			"object":  "any",
		},
		emit: emitGo,
	}
}

// GetTarget resolves a target by name; the empty name selects the default
// powershell target.
func GetTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "", "powershell":
		return PowerShellTarget(), nil
	case "go":
		return GoTarget(), nil
	default:
		return Target{}, fmt.Errorf("unknown target %q (available: %s)",
			name, strings.Join(AvailableTargets(), ", "))
	}
}

// AvailableTargets lists the supported target names.
func AvailableTargets() []string {
	return []string{"powershell", "go"}
}

// goType maps a declared type through the target's TypeMap, defaulting to
// any for types the map does not know.
func (t Target) goType(declared string) string {
	if mapped, ok := t.TypeMap[strings.ToLower(declared)]; ok {
		return mapped
	}
	return "any"
}
