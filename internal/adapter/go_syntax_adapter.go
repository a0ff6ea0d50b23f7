package adapter

import (
	"go/ast"
	"go/parser"
	"go/token"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// SyntaxTreeAdapter produces the syntax tree semantic scopes are resolved
// against. It is an injected capability: when no adapter exists for a
// language the caller passes a nil tree and semantic tags degrade to
// unbounded.
type SyntaxTreeAdapter interface {
	// Parse builds a generic syntax tree for the given source. The returned
	// tree uses 1-based inclusive line spans.
	Parse(filename string, src []byte) (*m.SyntaxNode, error)

	// Language is the language id this adapter serves.
	Language() string
}

// LocalGoSyntaxAdapter is a SyntaxTreeAdapter backed by go/parser. Node type
// names follow the tree-sitter vocabulary the scope definitions use
// (function_declaration, method_declaration, parameter_list, block,
// type_declaration) so one scope mapping serves external parsers too.
type LocalGoSyntaxAdapter struct{}

// NewLocalGoSyntaxAdapter constructs a LocalGoSyntaxAdapter.
func NewLocalGoSyntaxAdapter() *LocalGoSyntaxAdapter {
	return &LocalGoSyntaxAdapter{}
}

// Language implements SyntaxTreeAdapter.
func (a *LocalGoSyntaxAdapter) Language() string {
	return "go"
}

// Parse implements SyntaxTreeAdapter.
func (a *LocalGoSyntaxAdapter) Parse(filename string, src []byte) (*m.SyntaxNode, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	root := &m.SyntaxNode{
		Type:      "source_file",
		StartLine: fset.Position(file.Pos()).Line,
		EndLine:   fset.Position(file.End()).Line,
	}

	for _, decl := range file.Decls {
		if node := a.declNode(fset, decl); node != nil {
			root.Children = append(root.Children, node)
		}
	}

	return root, nil
}

func (a *LocalGoSyntaxAdapter) declNode(fset *token.FileSet, decl ast.Decl) *m.SyntaxNode {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return a.funcNode(fset, d)

	case *ast.GenDecl:
		if d.Tok != token.TYPE {
			return nil
		}

		return &m.SyntaxNode{
			Type:      "type_declaration",
			StartLine: fset.Position(d.Pos()).Line,
			EndLine:   fset.Position(d.End()).Line,
		}
	}

	return nil
}

func (a *LocalGoSyntaxAdapter) funcNode(fset *token.FileSet, d *ast.FuncDecl) *m.SyntaxNode {
	nodeType := "function_declaration"
	if d.Recv != nil {
		nodeType = "method_declaration"
	}

	node := &m.SyntaxNode{
		Type:      nodeType,
		StartLine: fset.Position(d.Pos()).Line,
		EndLine:   fset.Position(d.End()).Line,
	}

	if d.Type.Params != nil {
		node.Children = append(node.Children, &m.SyntaxNode{
			Type:      "parameter_list",
			StartLine: fset.Position(d.Type.Params.Pos()).Line,
			EndLine:   fset.Position(d.Type.Params.End()).Line,
		})
	}

	if d.Body != nil {
		node.Children = append(node.Children, a.blockNode(fset, d.Body))
	}

	return node
}

// blockNode converts a block statement, descending into the statements that
// introduce nested blocks so `.block` scopes can match them.
func (a *LocalGoSyntaxAdapter) blockNode(fset *token.FileSet, b *ast.BlockStmt) *m.SyntaxNode {
	node := &m.SyntaxNode{
		Type:      "block",
		StartLine: fset.Position(b.Pos()).Line,
		EndLine:   fset.Position(b.End()).Line,
	}

	for _, stmt := range b.List {
		node.Children = append(node.Children, a.stmtBlocks(fset, stmt)...)
	}

	return node
}

func (a *LocalGoSyntaxAdapter) stmtBlocks(fset *token.FileSet, stmt ast.Stmt) []*m.SyntaxNode {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		nodes := []*m.SyntaxNode{a.blockNode(fset, s.Body)}
		if elseBlock, ok := s.Else.(*ast.BlockStmt); ok {
			nodes = append(nodes, a.blockNode(fset, elseBlock))
		}

		return nodes

	case *ast.ForStmt:
		return []*m.SyntaxNode{a.blockNode(fset, s.Body)}

	case *ast.RangeStmt:
		return []*m.SyntaxNode{a.blockNode(fset, s.Body)}

	case *ast.BlockStmt:
		return []*m.SyntaxNode{a.blockNode(fset, s)}
	}

	return nil
}
