package dynpar

import "fmt"

// Code identifies a class of non-fatal generation warning.
type Code string

const (
	// CodeUntypedParameter: a dynamic parameter has no type constraint and
	// falls back to the untyped sentinel.
	CodeUntypedParameter Code = "untyped-parameter"
	// CodeReservedCollision: a declared name abbreviates one of the host's
	// common parameter names.
	CodeReservedCollision Code = "reserved-name-collision"
	// CodeMalformedConditional: a conditional-inclusion annotation without a
	// condition argument; degraded to always-true.
	CodeMalformedConditional Code = "malformed-conditional"
	// CodeVacuousCondition: a condition that is whitespace after delimiter
	// stripping; preserved literally rather than guessed at.
	CodeVacuousCondition Code = "vacuous-condition"
	// CodeFormatFailed: the go target's formatter rejected the assembled
	// source; the raw text is returned instead.
	CodeFormatFailed Code = "format-failed"
)

// Diagnostic is one warning produced alongside the generated source. The
// generated source itself is never an error value; callers that care about
// degraded input must inspect this side channel.
type Diagnostic struct {
	Code      Code
	Parameter string // affected parameter name, empty for whole-output warnings
	Message   string
}

func (d Diagnostic) String() string {
	if d.Parameter == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: parameter %q: %s", d.Code, d.Parameter, d.Message)
}

// Reporter accumulates diagnostics in the order they are discovered.
// Warnings never abort generation.
type Reporter struct {
	diags []Diagnostic
}

func (r *Reporter) warnf(code Code, param, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Code:      code,
		Parameter: param,
		Message:   fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns the collected warnings in discovery order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}
