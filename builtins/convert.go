package builtins

import (
	"strconv"
	"strings"

	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// addConvertMethods registers the three explicit conversions
// (to_string/to_number/to_bool), distinct from FormatValue/IsTruthy in
// that a failed numeric parse is a type error rather than a silent 0.
func addConvertMethods(out map[string]*value.Callable) {
	out["to_string"] = hostFunc("to_string", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("to_string", args, 1); err != nil {
			return nil, err
		}
		return value.Str(value.FormatValue(args[0])), nil
	})

	out["to_number"] = hostFunc("to_number", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("to_number", args, 1); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case value.Num:
			return x, nil
		case value.Bool:
			if x {
				return value.Num(1), nil
			}
			return value.Num(0), nil
		case value.Str:
			f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
			if err != nil {
				return nil, rillerr.TypeError(zeroSpan, "to_number: cannot parse "+strconv.Quote(string(x))+" as a number")
			}
			return value.Num(f), nil
		default:
			return nil, typeErrf("to_number", x)
		}
	})

	out["to_bool"] = hostFunc("to_bool", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("to_bool", args, 1); err != nil {
			return nil, err
		}
		return value.Bool(value.IsTruthy(args[0])), nil
	})
}
