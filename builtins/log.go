package builtins

import "github.com/opal-lang/rill/value"

// addLogFunctions registers "log", the only built-in spec.md names
// directly (§8 end-to-end scenario 1: "hello" -> log :> $g). It forwards
// the piped value to callbacks.onLog and, if configured,
// observability.onLogEvent, then passes the value through unchanged so
// it can continue down the pipe chain.
func addLogFunctions(out map[string]*value.Callable) {
	out["log"] = hostFunc("log", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("log", args, 1); err != nil {
			return nil, err
		}
		rc, err := runtimeContext(ctx)
		if err != nil {
			return nil, err
		}
		v := args[0]
		if onLog := rc.Callbacks().OnLog; onLog != nil {
			onLog(v)
		}
		if onEvent := rc.Observability().OnLogEvent; onEvent != nil {
			onEvent(v)
		}
		return v, nil
	})
}
