package domain

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"guardscope.dev/pkg/guardscope/internal/adapter"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

// ScopeResolver flattens a language's scope definitions across its extends
// chain. Resolution is pure per language id and memoized process-wide:
// repeated calls are O(1) map reads after the first.
type ScopeResolver interface {
	// Resolve returns the flattened scope mapping for langID. Unknown
	// languages resolve to an empty mapping. Diagnostics carry circular
	// inheritance detections and configuration problems.
	Resolve(langID string) (m.ScopeMapping, []m.Diagnostic)
}

type scopeResolver struct {
	config adapter.ScopeConfigAdapter

	loadOnce    sync.Once
	defs        map[string]m.LanguageScopeDefinition
	configDiags []m.Diagnostic

	// group serializes the first resolution per language id so concurrent
	// files never race to populate the same cache entry; cache reads are
	// lock-free afterwards.
	group singleflight.Group
	cache sync.Map // langID -> resolved
}

// resolved is the immutable cache entry published after first resolution.
type resolved struct {
	scopes m.ScopeMapping
	diags  []m.Diagnostic
}

// NewScopeResolver constructs a ScopeResolver over the given configuration
// source. Definitions are loaded lazily on first use.
func NewScopeResolver(config adapter.ScopeConfigAdapter) ScopeResolver {
	return &scopeResolver{config: config}
}

func (r *scopeResolver) Resolve(langID string) (m.ScopeMapping, []m.Diagnostic) {
	r.loadOnce.Do(func() {
		r.defs, r.configDiags = r.config.Load()
		if r.defs == nil {
			r.defs = map[string]m.LanguageScopeDefinition{}
		}
	})

	if entry, ok := r.cache.Load(langID); ok {
		res := entry.(resolved)
		return res.scopes, res.withConfigDiags(r.configDiags)
	}

	entry, _, _ := r.group.Do(langID, func() (any, error) {
		scopes, diags := r.flatten(langID, map[string]bool{})
		res := resolved{scopes: scopes, diags: diags}
		r.cache.Store(langID, res)

		return res, nil
	})

	res := entry.(resolved)

	return res.scopes, res.withConfigDiags(r.configDiags)
}

// withConfigDiags combines cached resolution diagnostics with the one-time
// configuration diagnostics without mutating either slice.
func (res resolved) withConfigDiags(configDiags []m.Diagnostic) []m.Diagnostic {
	if len(res.diags) == 0 && len(configDiags) == 0 {
		return nil
	}

	out := make([]m.Diagnostic, 0, len(res.diags)+len(configDiags))
	out = append(out, res.diags...)
	out = append(out, configDiags...)

	return out
}

// flatten walks up the extends chain depth-first, parent entries first. The
// visited set caps the walk: revisiting a language means the chain cycles,
// in which case that branch contributes nothing.
func (r *scopeResolver) flatten(langID string, visited map[string]bool) (m.ScopeMapping, []m.Diagnostic) {
	if visited[langID] {
		return m.ScopeMapping{}, []m.Diagnostic{{
			Kind:   m.DiagCircularInheritance,
			Detail: fmt.Sprintf("language %q transitively extends itself", langID),
		}}
	}

	visited[langID] = true

	def, ok := r.defs[langID]
	if !ok {
		return m.ScopeMapping{}, nil
	}

	scopes := m.ScopeMapping{}
	var diags []m.Diagnostic

	if def.Extends != "" {
		parentScopes, parentDiags := r.flatten(def.Extends, visited)
		diags = append(diags, parentDiags...)

		for name, types := range parentScopes {
			scopes[name] = append([]string(nil), types...)
		}

		// A cycle anywhere up the chain poisons this language too.
		for _, d := range diags {
			if d.Kind == m.DiagCircularInheritance {
				return m.ScopeMapping{}, diags
			}
		}
	}

	for name, types := range def.Scopes {
		scopes[name] = append(scopes[name], types...)
	}

	return scopes, diags
}
