package model

// ScopeKind discriminates the three ways a tag's extent can be declared.
type ScopeKind string

const (
	// ScopeUnbounded extends until the next tag for the same actor or EOF.
	ScopeUnbounded ScopeKind = "unbounded"
	// ScopeLineCount covers a fixed number of lines after the tag.
	ScopeLineCount ScopeKind = "line-count"
	// ScopeSemantic covers a syntax-tree construct (func, class, block, ...).
	ScopeSemantic ScopeKind = "semantic"
)

// ScopeSpec is the parsed scope suffix of a guard tag. Count is meaningful
// only for ScopeLineCount, Name only for ScopeSemantic.
type ScopeSpec struct {
	Kind  ScopeKind
	Count int
	Name  string
}

// Anchor records how a tag sits relative to code on its line.
type Anchor string

const (
	// AnchorStandalone means the tag occupies its own comment line.
	AnchorStandalone Anchor = "standalone"
	// AnchorInline means the tag trails code on the same line.
	AnchorInline Anchor = "inline"
)

// GuardTag is one parsed @guard occurrence. Immutable once scanned; the
// scanner emits tags in file order (ascending Line, source order within a
// line).
type GuardTag struct {
	Line       int
	Actor      ActorKey
	Permission Permission
	Scope      ScopeSpec
	Anchor     Anchor
	Raw        string
}
