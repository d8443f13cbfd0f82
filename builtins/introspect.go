package builtins

import "github.com/opal-lang/rill/value"

// addIntrospectFunctions registers "identity" and "type", the smallest
// possible diagnostic built-ins: identity passes its argument straight
// through (useful as a no-op spread target), type reports the inferred
// type name spec §3.1/§4.2 define as a total function over every value.
func addIntrospectFunctions(out map[string]*value.Callable) {
	out["identity"] = hostFunc("identity", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("identity", args, 1); err != nil {
			return nil, err
		}
		return args[0], nil
	})

	out["type"] = hostFunc("type", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("type", args, 1); err != nil {
			return nil, err
		}
		return value.Str(value.InferType(args[0])), nil
	})
}
