package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// stubScopeConfig feeds canned definitions to the resolver.
type stubScopeConfig struct {
	defs  map[string]m.LanguageScopeDefinition
	diags []m.Diagnostic
}

func (s *stubScopeConfig) Load() (map[string]m.LanguageScopeDefinition, []m.Diagnostic) {
	return s.defs, s.diags
}

func TestScopeResolver_InheritanceFlattening(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{
		"javascript": {
			ID:     "javascript",
			Scopes: map[string][]string{"func": {"function_declaration", "arrow_function"}},
		},
		"typescript": {
			ID:      "typescript",
			Extends: "javascript",
			Scopes:  map[string][]string{"func": {"function_signature"}, "class": {"interface_declaration"}},
		},
	}})

	scopes, diags := r.Resolve("typescript")

	assert.Empty(t, diags)

	// Parent entries first, child entries appended.
	assert.Equal(t, []string{"function_declaration", "arrow_function", "function_signature"}, scopes["func"])
	// Scope names only the child declares exist too.
	assert.Equal(t, []string{"interface_declaration"}, scopes["class"])

	assert.True(t, scopes.Matches("func", "arrow_function"))
	assert.False(t, scopes.Matches("func", "interface_declaration"))
}

func TestScopeResolver_UnknownLanguage(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{}})

	scopes, diags := r.Resolve("brainfuck")

	assert.Empty(t, scopes)
	assert.Empty(t, diags)
}

func TestScopeResolver_CycleSafety(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{
		"a": {ID: "a", Extends: "b", Scopes: map[string][]string{"func": {"fa"}}},
		"b": {ID: "b", Extends: "a", Scopes: map[string][]string{"func": {"fb"}}},
	}})

	scopes, diags := r.Resolve("a")

	assert.Empty(t, scopes)

	require.NotEmpty(t, diags)
	assert.Equal(t, m.DiagCircularInheritance, diags[0].Kind)
}

func TestScopeResolver_SelfCycle(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{
		"loop": {ID: "loop", Extends: "loop", Scopes: map[string][]string{"func": {"f"}}},
	}})

	scopes, diags := r.Resolve("loop")

	assert.Empty(t, scopes)
	require.NotEmpty(t, diags)
	assert.Equal(t, m.DiagCircularInheritance, diags[0].Kind)
}

func TestScopeResolver_CachedResultsAreStable(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{
		"python": {ID: "python", Scopes: map[string][]string{"func": {"function_definition"}}},
	}})

	first, _ := r.Resolve("python")
	second, _ := r.Resolve("python")

	assert.Equal(t, first, second)
}

func TestScopeResolver_ConcurrentFirstUse(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{defs: map[string]m.LanguageScopeDefinition{
		"go": {ID: "go", Scopes: map[string][]string{"func": {"function_declaration"}}},
	}})

	var wg sync.WaitGroup
	results := make([]m.ScopeMapping, 8)

	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot], _ = r.Resolve("go")
		}(i)
	}

	wg.Wait()

	for _, scopes := range results {
		assert.Equal(t, []string{"function_declaration"}, scopes["func"])
	}
}

func TestScopeResolver_ConfigDiagnosticsSurface(t *testing.T) {
	r := NewScopeResolver(&stubScopeConfig{
		defs:  map[string]m.LanguageScopeDefinition{},
		diags: []m.Diagnostic{{Kind: m.DiagScopeConfig, Detail: "missing resource"}},
	})

	_, diags := r.Resolve("python")

	require.Len(t, diags, 1)
	assert.Equal(t, m.DiagScopeConfig, diags[0].Kind)
}
