package rtctx

import (
	"log/slog"
	"regexp"

	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// Config is the runtime context constructor record of spec §6. Callers
// (typically driver.Execute's caller, or cmd/rill) are expected to have
// already merged built-ins with host overrides into Functions/Methods —
// rtctx has no dependency on the builtins package, so it never supplies
// defaults itself.
type Config struct {
	// Variables seeds the root scope. Callables nested inside dicts are
	// back-bound to their containing dict, as dict literal construction
	// would do (spec §4.6.3).
	Variables map[string]value.Value

	// Functions is the fully merged host function table (built-ins plus
	// overrides); Methods is appended-after-built-ins, per spec §6.
	Functions map[string]*value.Callable
	Methods   map[string]*value.Callable

	Callbacks     Callbacks
	Observability Observability

	// AutoExceptions lists regex source strings; an invalid pattern is a
	// construction-time error (R_INVALID_PATTERN, spec §6, §7).
	AutoExceptions []string

	// TimeoutMS is the per-call wall-clock budget; 0 disables it.
	TimeoutMS int
	Signal    AbortSignal
	Logger    *slog.Logger
}

// New validates cfg and builds the root Context.
func New(cfg Config) (*Context, error) {
	if cfg.Callbacks.OnLog == nil {
		return nil, rillerr.New(rillerr.CodeInvalidConfig, spanZero(),
			"callbacks.onLog is required")
	}

	patterns := make([]compiledPattern, 0, len(cfg.AutoExceptions))
	for _, src := range cfg.AutoExceptions {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, rillerr.InvalidPattern(src, err)
		}
		patterns = append(patterns, compiledPattern{source: src, re: re})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}

	functions := cfg.Functions
	if functions == nil {
		functions = make(map[string]*value.Callable)
	}
	methods := cfg.Methods
	if methods == nil {
		methods = make(map[string]*value.Callable)
	}

	vars := make(map[string]value.Value, len(cfg.Variables))
	types := make(map[string]string, len(cfg.Variables))
	for name, v := range cfg.Variables {
		if d, ok := v.(*value.Dict); ok {
			v = value.FinalizeDict(d)
		}
		vars[name] = v
		types[name] = value.InferType(v)
	}

	return &Context{
		variables:      vars,
		variableTypes:  types,
		functions:      functions,
		methods:        methods,
		callbacks:      cfg.Callbacks,
		observability:  cfg.Observability,
		autoExceptions: patterns,
		timeoutMS:      cfg.TimeoutMS,
		signal:         cfg.Signal,
		logger:         logger,
	}, nil
}
