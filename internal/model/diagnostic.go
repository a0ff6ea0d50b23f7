package model

// DiagnosticKind classifies recoverable conditions reported during a pass.
type DiagnosticKind string

const (
	// DiagMalformedTag marks a tag with unparseable actor/permission syntax.
	DiagMalformedTag DiagnosticKind = "malformed-tag"
	// DiagUnresolvedScope marks a semantic scope that matched no node.
	DiagUnresolvedScope DiagnosticKind = "unresolved-scope"
	// DiagCircularInheritance marks a language extends-chain cycle.
	DiagCircularInheritance DiagnosticKind = "circular-inheritance"
	// DiagScopeConfig marks a missing or unreadable scope resource.
	DiagScopeConfig DiagnosticKind = "scope-config"
)

// Diagnostic is one non-fatal finding. Line is 0 when the condition is not
// tied to a source line (e.g. configuration problems).
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Detail string
}
