package builtins

import (
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// addJSONFunctions registers "json" and "parse_json", the pair spec
// §8's round-trip law names ("json ∘ parse-json is identity ... modulo
// closure exclusion").
func addJSONFunctions(out map[string]*value.Callable) {
	out["json"] = hostFunc("json", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("json", args, 1); err != nil {
			return nil, err
		}
		s, err := value.ToJSON(args[0])
		if err != nil {
			return nil, rillerr.Wrap(rillerr.CodeTypeError, zeroSpan, "json encode failed", err)
		}
		return value.Str(s), nil
	})

	out["parse_json"] = hostFunc("parse_json", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("parse_json", args, 0)
		if err != nil {
			return nil, err
		}
		v, err := value.FromJSON(s)
		if err != nil {
			return nil, rillerr.Wrap(rillerr.CodeTypeError, zeroSpan, "invalid json", err)
		}
		return v, nil
	})
}
