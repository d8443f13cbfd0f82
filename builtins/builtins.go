// Package builtins supplies the default function and method tables spec
// §6 says the runtime context constructor merges in under the name
// "built-ins": host-supplied functions override a built-in of the same
// name, host methods are appended after the built-in set.
//
// Grounded on pkgs/decorators/registry.go's name-keyed registration
// style, reworked from a mutable *Registry (decorators register via
// init()) into two plain maps that Functions() and Methods() build
// afresh on every call — there is nothing to add at runtime here, so the
// registry's mutex and Register* methods have no work to do.
package builtins

import "github.com/opal-lang/rill/value"

// Functions returns a fresh copy of the built-in function table, keyed
// by name. Callers merge their own overrides on top (spec §6: "functions
// ... overrides same-named built-ins").
func Functions() map[string]*value.Callable {
	out := make(map[string]*value.Callable)
	addLogFunctions(out)
	addIntrospectFunctions(out)
	addJSONFunctions(out)
	addGenerateFunctions(out)
	addIteratorFunctions(out)
	return out
}

// Methods returns a fresh copy of the built-in method table, keyed by
// name. Callers append their own on top (spec §6: "methods ... appended
// after built-ins").
func Methods() map[string]*value.Callable {
	out := make(map[string]*value.Callable)
	addConvertMethods(out)
	addCollectionMethods(out)
	addStringMethods(out)
	addVectorMethods(out)
	return out
}

// hostFunc builds a runtime callable (spec §3.2) around a host-native
// implementation. name is carried through to observability hooks and
// error messages.
func hostFunc(name string, fn value.HostFunc) *value.Callable {
	return &value.Callable{
		CallKind: value.RuntimeCallable,
		Name:     name,
		Host:     fn,
	}
}
