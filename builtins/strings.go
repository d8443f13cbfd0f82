package builtins

import (
	"strings"

	"github.com/opal-lang/rill/value"
)

// addStringMethods registers the string-manipulation methods every
// pipe-chain script eventually reaches for. Receivers arrive as args[0].
func addStringMethods(out map[string]*value.Callable) {
	out["upper"] = hostFunc("upper", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("upper", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(strings.ToUpper(s)), nil
	})

	out["lower"] = hostFunc("lower", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("lower", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(strings.ToLower(s)), nil
	})

	out["trim"] = hostFunc("trim", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("trim", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(strings.TrimSpace(s)), nil
	})

	out["split"] = hostFunc("split", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := requireString("split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.Str(p)
		}
		return value.NewList(elems...), nil
	})

	out["join"] = hostFunc("join", func(ctx any, args []value.Value) (value.Value, error) {
		l, err := requireList("join", arg(args, 0))
		if err != nil {
			return nil, err
		}
		sep, err := requireString("join", args, 1)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(l.Elements))
		for i, e := range l.Elements {
			parts[i] = value.FormatValue(e)
		}
		return value.Str(strings.Join(parts, sep)), nil
	})

	out["replace"] = hostFunc("replace", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("replace", args, 0)
		if err != nil {
			return nil, err
		}
		old, err := requireString("replace", args, 1)
		if err != nil {
			return nil, err
		}
		repl, err := requireString("replace", args, 2)
		if err != nil {
			return nil, err
		}
		return value.Str(strings.ReplaceAll(s, old, repl)), nil
	})

	out["starts_with"] = hostFunc("starts_with", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("starts_with", args, 0)
		if err != nil {
			return nil, err
		}
		prefix, err := requireString("starts_with", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasPrefix(s, prefix)), nil
	})

	out["ends_with"] = hostFunc("ends_with", func(ctx any, args []value.Value) (value.Value, error) {
		s, err := requireString("ends_with", args, 0)
		if err != nil {
			return nil, err
		}
		suffix, err := requireString("ends_with", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasSuffix(s, suffix)), nil
	})
}
