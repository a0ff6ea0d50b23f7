package domain

import (
	"strings"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// LineSpan is a resolved inclusive line range.
type LineSpan struct {
	Start int
	End   int
}

// SpanLocator turns a tag's semantic scope name into the concrete line range
// it governs, consulting the externally produced syntax tree. Context scopes
// are resolved lexically from the raw lines instead.
type SpanLocator interface {
	// Locate resolves the span for a semantic tag. ok is false when no
	// matching construct exists (including when root is nil), in which case
	// the caller degrades the tag to unbounded.
	Locate(tag m.GuardTag, scopes m.ScopeMapping, root *m.SyntaxNode, lines []string, style CommentStyle) (LineSpan, bool)
}

type spanLocator struct{}

// NewSpanLocator constructs the production SpanLocator.
func NewSpanLocator() SpanLocator {
	return &spanLocator{}
}

// contextScopeName is the scope suffix whose extent is documentation-driven
// rather than syntax-driven.
const contextScopeName = "context"

func (l *spanLocator) Locate(tag m.GuardTag, scopes m.ScopeMapping, root *m.SyntaxNode, lines []string, style CommentStyle) (LineSpan, bool) {
	name := tag.Scope.Name

	if name == contextScopeName {
		return contextSpan(tag, lines, style), true
	}

	if root == nil {
		return LineSpan{}, false
	}

	switch name {
	case "sig":
		return l.locateSignature(tag, scopes, root)
	case "body":
		return l.locateBody(tag, scopes, root)
	case "method":
		return l.locateMethod(tag, scopes, root)
	default:
		node := findScopeNode(tag, scopes[name], root)
		if node == nil {
			return LineSpan{}, false
		}

		return LineSpan{Start: min(tag.Line, node.StartLine), End: node.EndLine}, true
	}
}

// locateSignature resolves `.sig`: the header of the nearest function-like
// construct. When the language's mapping names signature sub-node types the
// span runs from the construct's first line through the sub-node's last
// line. Without that knowledge we fall back to sigFallbackSpan.
func (l *spanLocator) locateSignature(tag m.GuardTag, scopes m.ScopeMapping, root *m.SyntaxNode) (LineSpan, bool) {
	node := findScopeNode(tag, scopes["func"], root)
	if node == nil {
		return LineSpan{}, false
	}

	if sig := childIn(node, scopes["sig"]); sig != nil && tag.Anchor == m.AnchorStandalone {
		return LineSpan{Start: tag.Line, End: sig.EndLine}, true
	}

	return sigFallbackSpan(tag, node), true
}

// sigFallbackSpan is the single policy point for signature guards when no
// signature sub-node is known. Inline tags govern only their own line even
// for multi-line headers; standalone tags govern the tag line through the
// construct's first line. Revisit here, not in the state machine.
func sigFallbackSpan(tag m.GuardTag, node *m.SyntaxNode) LineSpan {
	if tag.Anchor == m.AnchorInline {
		return LineSpan{Start: tag.Line, End: tag.Line}
	}

	return LineSpan{Start: tag.Line, End: node.StartLine}
}

// locateBody resolves `.body`: the matched construct minus its header.
func (l *spanLocator) locateBody(tag m.GuardTag, scopes m.ScopeMapping, root *m.SyntaxNode) (LineSpan, bool) {
	node := findScopeNode(tag, scopes["func"], root)
	if node == nil {
		return LineSpan{}, false
	}

	if sig := childIn(node, scopes["sig"]); sig != nil && sig.EndLine < node.EndLine {
		return LineSpan{Start: sig.EndLine + 1, End: node.EndLine}, true
	}

	if body := childIn(node, scopes["body"]); body != nil {
		start := body.StartLine
		// Brace languages open the body on the header line; the governed
		// region starts below it.
		if start == node.StartLine && start < body.EndLine {
			start++
		}

		return LineSpan{Start: start, End: body.EndLine}, true
	}

	if node.StartLine < node.EndLine {
		return LineSpan{Start: node.StartLine + 1, End: node.EndLine}, true
	}

	return LineSpan{Start: node.StartLine, End: node.EndLine}, true
}

// locateMethod resolves `.method`: like `.func` but the match must sit
// inside a class-like ancestor when the language distinguishes classes.
func (l *spanLocator) locateMethod(tag m.GuardTag, scopes m.ScopeMapping, root *m.SyntaxNode) (LineSpan, bool) {
	methodTypes := scopes["method"]
	if len(methodTypes) == 0 {
		methodTypes = scopes["func"]
	}

	classTypes := scopes["class"]

	node := findNode(tag, root, func(n *m.SyntaxNode, ancestors []*m.SyntaxNode) bool {
		if !typeIn(n.Type, methodTypes) {
			return false
		}

		if len(classTypes) == 0 {
			return true
		}

		for _, anc := range ancestors {
			if typeIn(anc.Type, classTypes) {
				return true
			}
		}

		return false
	})

	if node == nil {
		// No class distinction resolvable for this language; plain lookup.
		node = findScopeNode(tag, scopes["func"], root)
	}

	if node == nil {
		return LineSpan{}, false
	}

	return LineSpan{Start: min(tag.Line, node.StartLine), End: node.EndLine}, true
}

// findScopeNode matches the nearest construct of any of the given types.
func findScopeNode(tag m.GuardTag, types []string, root *m.SyntaxNode) *m.SyntaxNode {
	if len(types) == 0 {
		return nil
	}

	return findNode(tag, root, func(n *m.SyntaxNode, _ []*m.SyntaxNode) bool {
		return typeIn(n.Type, types)
	})
}

// findNode picks the construct a tag governs: for standalone anchors the
// first matching node that starts after the tag line, otherwise the smallest
// matching node enclosing the tag line.
func findNode(tag m.GuardTag, root *m.SyntaxNode, pred func(*m.SyntaxNode, []*m.SyntaxNode) bool) *m.SyntaxNode {
	var following, enclosing *m.SyntaxNode

	walk(root, nil, func(n *m.SyntaxNode, ancestors []*m.SyntaxNode) {
		if n == root || !pred(n, ancestors) {
			return
		}

		if n.StartLine > tag.Line {
			if following == nil || n.StartLine < following.StartLine ||
				(n.StartLine == following.StartLine && n.Span() < following.Span()) {
				following = n
			}

			return
		}

		if n.Contains(tag.Line) {
			if enclosing == nil || n.Span() < enclosing.Span() {
				enclosing = n
			}
		}
	})

	if tag.Anchor == m.AnchorStandalone && following != nil {
		return following
	}

	if enclosing != nil {
		return enclosing
	}

	return following
}

func walk(n *m.SyntaxNode, ancestors []*m.SyntaxNode, visit func(*m.SyntaxNode, []*m.SyntaxNode)) {
	if n == nil {
		return
	}

	visit(n, ancestors)

	ancestors = append(ancestors, n)
	for _, child := range n.Children {
		walk(child, ancestors, visit)
	}
}

// childIn finds the first direct child of node whose type is in types.
func childIn(node *m.SyntaxNode, types []string) *m.SyntaxNode {
	if len(types) == 0 {
		return nil
	}

	for _, child := range node.Children {
		if typeIn(child.Type, types) {
			return child
		}
	}

	return nil
}

func typeIn(t string, types []string) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}

	return false
}

// contextSpan computes the extent of a context scope: the maximal contiguous
// run, starting right after the tag line, of comment lines sharing the tag's
// comment style, or one contiguous doc-block string literal beginning on the
// next non-blank line. The first line that is neither ends the run and is
// excluded.
func contextSpan(tag m.GuardTag, lines []string, style CommentStyle) LineSpan {
	span := LineSpan{Start: tag.Line, End: tag.Line}
	if tag.Line >= len(lines) {
		return span
	}

	marker := tagCommentMarker(lines[tag.Line-1], style)

	next := lines[tag.Line] // line tag.Line+1, 0-based index tag.Line

	if marker != "" && style.isCommentLine(next, marker) {
		for i := tag.Line; i < len(lines); i++ {
			if !style.isCommentLine(lines[i], marker) {
				break
			}

			span.End = i + 1
		}

		return span
	}

	// Doc block: skip blanks, then require a string-literal statement.
	i := tag.Line
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	if i >= len(lines) {
		return span
	}

	delim := style.docDelimiter(lines[i])
	if delim == "" {
		return span
	}

	span.End = i + 1

	opening := strings.TrimSpace(lines[i])
	rest := opening[len(delim):]
	if strings.Contains(rest, delim) {
		return span // single-line literal
	}

	for j := i + 1; j < len(lines); j++ {
		span.End = j + 1
		if strings.Contains(lines[j], delim) {
			break
		}
	}

	return span
}

// tagCommentMarker returns the comment marker introducing the tag's own
// line, or "" when the tag is not inside a recognized comment.
func tagCommentMarker(line string, style CommentStyle) string {
	marker, idx := style.commentPrefix(line)
	if idx < 0 {
		return ""
	}

	if marker == style.BlockStart {
		return ""
	}

	return marker
}
