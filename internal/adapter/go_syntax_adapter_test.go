package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

func parseGo(t *testing.T, src string) *m.SyntaxNode {
	t.Helper()

	a := NewLocalGoSyntaxAdapter()
	root, err := a.Parse("test.go", []byte(src))
	require.NoError(t, err)

	return root
}

func TestGoSyntaxAdapter_FunctionDeclaration(t *testing.T) {
	root := parseGo(t, strings.Join([]string{
		"package demo",          // 1
		"",                      // 2
		"func Add(a, b int) int {", // 3
		"\treturn a + b",        // 4
		"}",                     // 5
	}, "\n"))

	require.Len(t, root.Children, 1)

	fn := root.Children[0]
	assert.Equal(t, "function_declaration", fn.Type)
	assert.Equal(t, 3, fn.StartLine)
	assert.Equal(t, 5, fn.EndLine)

	require.Len(t, fn.Children, 2)
	assert.Equal(t, "parameter_list", fn.Children[0].Type)
	assert.Equal(t, 3, fn.Children[0].StartLine)
	assert.Equal(t, "block", fn.Children[1].Type)
	assert.Equal(t, 3, fn.Children[1].StartLine)
	assert.Equal(t, 5, fn.Children[1].EndLine)
}

func TestGoSyntaxAdapter_MethodDeclaration(t *testing.T) {
	root := parseGo(t, strings.Join([]string{
		"package demo",
		"",
		"type Counter struct{ n int }",
		"",
		"func (c *Counter) Inc() {",
		"\tc.n++",
		"}",
	}, "\n"))

	require.Len(t, root.Children, 2)
	assert.Equal(t, "type_declaration", root.Children[0].Type)
	assert.Equal(t, 3, root.Children[0].StartLine)

	method := root.Children[1]
	assert.Equal(t, "method_declaration", method.Type)
	assert.Equal(t, 5, method.StartLine)
	assert.Equal(t, 7, method.EndLine)
}

func TestGoSyntaxAdapter_NestedBlocks(t *testing.T) {
	root := parseGo(t, strings.Join([]string{
		"package demo",         // 1
		"",                     // 2
		"func F(xs []int) {",   // 3
		"\tfor _, x := range xs {", // 4
		"\t\tif x > 0 {",       // 5
		"\t\t\t_ = x",          // 6
		"\t\t}",                // 7
		"\t}",                  // 8
		"}",                    // 9
	}, "\n"))

	fn := root.Children[0]
	body := fn.Children[1]
	require.Equal(t, "block", body.Type)

	require.Len(t, body.Children, 1)
	forBlock := body.Children[0]
	assert.Equal(t, "block", forBlock.Type)
	assert.Equal(t, 4, forBlock.StartLine)
	assert.Equal(t, 8, forBlock.EndLine)

	require.Len(t, forBlock.Children, 1)
	ifBlock := forBlock.Children[0]
	assert.Equal(t, 5, ifBlock.StartLine)
	assert.Equal(t, 7, ifBlock.EndLine)
}

func TestGoSyntaxAdapter_MultiLineSignature(t *testing.T) {
	root := parseGo(t, strings.Join([]string{
		"package demo",  // 1
		"",              // 2
		"func Long(",    // 3
		"\ta int,",      // 4
		"\tb int,",      // 5
		") int {",       // 6
		"\treturn a + b", // 7
		"}",             // 8
	}, "\n"))

	fn := root.Children[0]
	params := fn.Children[0]
	assert.Equal(t, "parameter_list", params.Type)
	assert.Equal(t, 3, params.StartLine)
	assert.Equal(t, 6, params.EndLine)
}

func TestGoSyntaxAdapter_ParseError(t *testing.T) {
	a := NewLocalGoSyntaxAdapter()

	_, err := a.Parse("broken.go", []byte("package demo\nfunc {{{"))
	assert.Error(t, err)
}
