package model

// LanguageScopeDefinition is one language's declared scope-name to
// syntax-node-type mapping, optionally extending another language.
type LanguageScopeDefinition struct {
	ID      string              `yaml:"-"`
	Extends string              `yaml:"extends"`
	Scopes  map[string][]string `yaml:"scopes"`
}

// ScopeMapping is the resolved (inheritance-flattened) form: scope name to
// the node types that realize it. Parent entries come first; duplicates are
// harmless since lookups are membership tests.
type ScopeMapping map[string][]string

// Matches reports whether nodeType realizes the named scope.
func (sm ScopeMapping) Matches(scope, nodeType string) bool {
	for _, t := range sm[scope] {
		if t == nodeType {
			return true
		}
	}

	return false
}
