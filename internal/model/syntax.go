package model

// SyntaxNode is the tree shape this system consumes from an external parser.
// Node types are opaque strings matched against ScopeMapping entries; line
// numbers are 1-based and inclusive. The tree is read-only here.
type SyntaxNode struct {
	Type      string        `yaml:"type"`
	StartLine int           `yaml:"start_line"`
	EndLine   int           `yaml:"end_line"`
	Children  []*SyntaxNode `yaml:"children,omitempty"`
}

// Contains reports whether line falls inside the node's span.
func (n *SyntaxNode) Contains(line int) bool {
	return line >= n.StartLine && line <= n.EndLine
}

// Span is the node's height in lines.
func (n *SyntaxNode) Span() int {
	return n.EndLine - n.StartLine + 1
}
