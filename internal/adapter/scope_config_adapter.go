// Package adapter contains infrastructure adapters for the guardscope CLI.
package adapter

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

//go:embed language-scopes.yaml
var embeddedScopeConfig []byte

// ScopeConfigAdapter loads the per-language scope definitions that map scope
// names (func, class, block, ...) to syntax node types. Loading never fails
// hard: a missing or malformed resource yields the embedded defaults (or an
// empty set) plus a diagnostic.
type ScopeConfigAdapter interface {
	Load() (map[string]m.LanguageScopeDefinition, []m.Diagnostic)
}

// scopeConfigFile is the on-disk YAML shape.
type scopeConfigFile struct {
	Version   int                                  `yaml:"version"`
	Languages map[string]m.LanguageScopeDefinition `yaml:"languages"`
}

// LocalScopeConfigAdapter reads definitions from an optional YAML file,
// falling back to the configuration embedded in the binary.
type LocalScopeConfigAdapter struct {
	path m.Path
}

// NewLocalScopeConfigAdapter constructs an adapter. An empty path means
// "embedded defaults only".
func NewLocalScopeConfigAdapter(path m.Path) *LocalScopeConfigAdapter {
	return &LocalScopeConfigAdapter{path: path}
}

// Load implements ScopeConfigAdapter.
func (a *LocalScopeConfigAdapter) Load() (map[string]m.LanguageScopeDefinition, []m.Diagnostic) {
	var diags []m.Diagnostic

	data := embeddedScopeConfig

	if a.path != "" {
		fileData, err := os.ReadFile(string(a.path))
		if err != nil {
			diags = append(diags, m.Diagnostic{
				Kind:   m.DiagScopeConfig,
				Detail: fmt.Sprintf("cannot read scope config %s: %v; using embedded defaults", a.path, err),
			})
		} else {
			data = fileData
		}
	}

	defs, err := parseScopeConfig(data)
	if err != nil {
		diags = append(diags, m.Diagnostic{
			Kind:   m.DiagScopeConfig,
			Detail: fmt.Sprintf("malformed scope config: %v; using embedded defaults", err),
		})

		// The user-supplied file was bad; the embedded copy is still usable.
		if defs, err = parseScopeConfig(embeddedScopeConfig); err != nil {
			return map[string]m.LanguageScopeDefinition{}, diags
		}
	}

	return defs, diags
}

func parseScopeConfig(data []byte) (map[string]m.LanguageScopeDefinition, error) {
	var cfg scopeConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	defs := make(map[string]m.LanguageScopeDefinition, len(cfg.Languages))
	for id, def := range cfg.Languages {
		def.ID = id
		defs[id] = def
	}

	return defs, nil
}
