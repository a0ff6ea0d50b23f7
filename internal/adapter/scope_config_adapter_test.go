package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

func TestScopeConfigAdapter_EmbeddedDefaults(t *testing.T) {
	a := NewLocalScopeConfigAdapter("")

	defs, diags := a.Load()

	assert.Empty(t, diags)
	require.Contains(t, defs, "go")
	require.Contains(t, defs, "python")
	require.Contains(t, defs, "typescript")

	assert.Equal(t, "javascript", defs["typescript"].Extends)
	assert.Contains(t, defs["go"].Scopes["func"], "function_declaration")
	assert.Equal(t, "go", defs["go"].ID)
}

func TestScopeConfigAdapter_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopes.yaml")
	content := `
version: 1
languages:
  mylang:
    scopes:
      func: [fn_def]
  mylang2:
    extends: mylang
    scopes:
      class: [cls_def]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	a := NewLocalScopeConfigAdapter(m.Path(path))
	defs, diags := a.Load()

	assert.Empty(t, diags)
	require.Contains(t, defs, "mylang")
	assert.Equal(t, []string{"fn_def"}, defs["mylang"].Scopes["func"])
	assert.Equal(t, "mylang", defs["mylang2"].Extends)
}

func TestScopeConfigAdapter_MissingFileFallsBack(t *testing.T) {
	a := NewLocalScopeConfigAdapter("does/not/exist.yaml")

	defs, diags := a.Load()

	require.Len(t, diags, 1)
	assert.Equal(t, m.DiagScopeConfig, diags[0].Kind)

	// Embedded defaults still apply.
	assert.Contains(t, defs, "go")
}

func TestScopeConfigAdapter_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [not a map"), 0o644))

	a := NewLocalScopeConfigAdapter(m.Path(path))
	defs, diags := a.Load()

	require.Len(t, diags, 1)
	assert.Equal(t, m.DiagScopeConfig, diags[0].Kind)
	assert.Contains(t, defs, "python")
}
