// Package extension turns a named bundle of host functions into the
// "namespace::name"-qualified function/method tables spec §6 describes:
// "When a set of host functions is presented as a named extension, each
// function name is rewritten to namespace::name; the namespace must match
// [A-Za-z0-9_-]+; a dispose field on an extension is separated from the
// function table and passed back to the caller for lifecycle management.
// The runtime itself never looks at dispose."
//
// Grounded on core/decorator/registry.go's sync.RWMutex-guarded
// registration-by-name pattern (reworked here to key on extension name
// rather than decorator path, since there's no role-inference step), and
// core/types/validation.go's jsonschema-based parameter validation
// (simplified: registration happens once per extension, so there is no
// validator cache to guard — core/types/validation_cache.go's cache
// exists because decorators are validated on every call, extensions only
// once at Register).
package extension

import (
	"fmt"
	"regexp"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Extension is a named, versioned bundle of host functions and methods a
// host plugs into a runtime context (spec §6's "plug-in extension
// surfaces"). ParamSchemas optionally gives a JSON Schema per function
// name, checked against that function's HostParams defaults at Register
// time — an authoring error in the extension itself, not a per-call cost.
type Extension struct {
	Name      string
	Version   string // semver, e.g. "v1.2.0"; "" skips conflict resolution
	Functions map[string]*value.Callable
	Methods   map[string]*value.Callable

	ParamSchemas map[string]Schema

	// Dispose releases resources the extension opened (a connection, a
	// subprocess). The runtime never calls it; Registry.Dispose runs it
	// for every registered extension, and Register returns the losing
	// extension of a version conflict so the caller can run its Dispose.
	Dispose func() error
}

// Namespaced returns name rewritten as "namespace::name", matching every
// lookup a namespaced extension's functions/methods are dispatched under.
func Namespaced(namespace, name string) string {
	return namespace + "::" + name
}

func validateNamespace(namespace string) error {
	if !namespacePattern.MatchString(namespace) {
		return rillerr.New(rillerr.CodeInvalidConfig, ast.Span{},
			fmt.Sprintf("extension namespace %q must match [A-Za-z0-9_-]+", namespace))
	}
	return nil
}

// rewrite returns a fresh map with every key prefixed "namespace::".
func rewrite(namespace string, table map[string]*value.Callable) map[string]*value.Callable {
	out := make(map[string]*value.Callable, len(table))
	for name, c := range table {
		out[Namespaced(namespace, name)] = c
	}
	return out
}
