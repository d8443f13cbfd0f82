package extension

import (
	"fmt"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// Registry accumulates registered extensions and exposes their merged,
// namespaced function/method tables. Grounded on core/decorator's global
// Registry (sync.RWMutex guarding a name-keyed map); unlike decorators,
// an extension has no role inference — it's just functions and methods.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Extension
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Extension)}
}

// Register validates ext (namespace shape, param schemas) and adds it,
// rewriting its table keys to "namespace::name" first. If another
// extension already holds the same name, both versions must be valid
// semver (per golang.org/x/mod/semver); the higher one wins and the
// losing *Extension (carrying its Dispose, if any) is returned so the
// caller can release it immediately rather than leak it. Two non-semver or equal-version
// registrations under the same name are a config error.
func (r *Registry) Register(ext *Extension) (*Extension, error) {
	if ext == nil {
		return nil, rillerr.New(rillerr.CodeInvalidConfig, ast.Span{}, "nil extension")
	}
	if err := validateNamespace(ext.Name); err != nil {
		return nil, err
	}
	if err := validateParamSchemas(ext); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[ext.Name]
	if !ok {
		r.entries[ext.Name] = namespaceExtension(ext)
		return nil, nil
	}

	winner, loser, err := resolveConflict(existing, ext)
	if err != nil {
		return nil, err
	}
	r.entries[ext.Name] = namespaceExtension(winner)
	if loser == existing {
		return loser, nil // caller must dispose of what Register is replacing
	}
	return loser, nil // caller's own ext lost; caller disposes of it itself
}

// resolveConflict decides which of two same-named extensions survives.
// Returns (winner, loser, error).
func resolveConflict(existing, incoming *Extension) (*Extension, *Extension, error) {
	if existing.Version == "" || incoming.Version == "" {
		return nil, nil, rillerr.New(rillerr.CodeInvalidConfig, ast.Span{},
			fmt.Sprintf("extension %q already registered and at least one registration has no version to break the tie", existing.Name))
	}
	if !semver.IsValid(existing.Version) || !semver.IsValid(incoming.Version) {
		return nil, nil, rillerr.New(rillerr.CodeInvalidConfig, ast.Span{},
			fmt.Sprintf("extension %q: version conflict with a non-semver version string", existing.Name))
	}
	switch cmp := semver.Compare(incoming.Version, existing.Version); {
	case cmp > 0:
		return incoming, existing, nil
	case cmp < 0:
		return existing, incoming, nil
	default:
		return nil, nil, rillerr.New(rillerr.CodeInvalidConfig, ast.Span{},
			fmt.Sprintf("extension %q: two registrations at the same version %q", existing.Name, existing.Version))
	}
}

func namespaceExtension(ext *Extension) *Extension {
	return &Extension{
		Name:      ext.Name,
		Version:   ext.Version,
		Functions: rewrite(ext.Name, ext.Functions),
		Methods:   rewrite(ext.Name, ext.Methods),
		Dispose:   ext.Dispose,
	}
}

// Functions returns the merged, namespaced function table across every
// registered extension, suitable for folding into rtctx.Config.Functions
// alongside builtins.Functions() and any unnamespaced host overrides.
func (r *Registry) Functions() map[string]*value.Callable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*value.Callable)
	for _, ext := range r.entries {
		for name, c := range ext.Functions {
			out[name] = c
		}
	}
	return out
}

// Methods mirrors Functions for the method table.
func (r *Registry) Methods() map[string]*value.Callable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*value.Callable)
	for _, ext := range r.entries {
		for name, c := range ext.Methods {
			out[name] = c
		}
	}
	return out
}

// Dispose calls every registered extension's Dispose, collecting errors.
// The runtime itself never calls this; it exists for a host's own
// shutdown path (spec §6: "the runtime itself never looks at dispose").
func (r *Registry) Dispose() []error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var errs []error
	for _, ext := range r.entries {
		if ext.Dispose == nil {
			continue
		}
		if err := ext.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("extension %q: %w", ext.Name, err))
		}
	}
	return errs
}
