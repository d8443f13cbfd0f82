package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/value"
)

func noop(ctx any, args []value.Value) (value.Value, error) { return value.Nil, nil }

func TestRegisterNamespacesFunctionNames(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	ext := &Extension{
		Name:    "kv",
		Version: "v1.0.0",
		Functions: map[string]*value.Callable{
			"get": {CallKind: value.RuntimeCallable, Name: "get", Host: noop},
		},
	}
	evicted, err := r.Register(ext)
	require.NoError(t, err)
	assert.Nil(t, evicted)

	fns := r.Functions()
	_, ok := fns["kv::get"]
	assert.True(t, ok)
	_, ok = fns["get"]
	assert.False(t, ok)
}

func TestRegisterRejectsBadNamespace(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	ext := &Extension{Name: "bad namespace!", Functions: map[string]*value.Callable{}}
	_, err := r.Register(ext)
	assert.Error(t, err)
}

func TestRegisterHigherSemverWins(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	old := &Extension{
		Name:      "kv",
		Version:   "v1.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
		Dispose:   func() error { return nil },
	}
	_, err := r.Register(old)
	require.NoError(t, err)

	newer := &Extension{
		Name:      "kv",
		Version:   "v2.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
	}
	loser, err := r.Register(newer)
	require.NoError(t, err)
	require.NotNil(t, loser)
	assert.Equal(t, "v1.0.0", loser.Version)
}

func TestRegisterLowerSemverLoses(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	_, err := r.Register(&Extension{
		Name:      "kv",
		Version:   "v2.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
	})
	require.NoError(t, err)

	loser, err := r.Register(&Extension{
		Name:      "kv",
		Version:   "v1.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
	})
	require.NoError(t, err)
	require.NotNil(t, loser)
	assert.Equal(t, "v1.0.0", loser.Version)

	fns := r.Functions()
	_, ok := fns["kv::get"]
	assert.True(t, ok, "higher version stays registered")
}

func TestRegisterSameVersionConflictErrors(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	_, err := r.Register(&Extension{
		Name:      "kv",
		Version:   "v1.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
	})
	require.NoError(t, err)

	_, err = r.Register(&Extension{
		Name:      "kv",
		Version:   "v1.0.0",
		Functions: map[string]*value.Callable{"get": {CallKind: value.RuntimeCallable, Host: noop}},
	})
	assert.Error(t, err)
}

func TestParamSchemaRejectsBadDefault(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	ext := &Extension{
		Name:    "kv",
		Version: "v1.0.0",
		Functions: map[string]*value.Callable{
			"set": {
				CallKind: value.RuntimeCallable,
				Host:     noop,
				HostParams: []value.Param{
					{Name: "ttl", HasDefault: true, Default: value.Str("not-a-number")},
				},
			},
		},
		ParamSchemas: map[string]Schema{
			"set": Schema(`{"type": "number"}`),
		},
	}
	_, err := r.Register(ext)
	assert.Error(t, err)
}

func TestParamSchemaAcceptsGoodDefault(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	ext := &Extension{
		Name:    "kv",
		Version: "v1.0.0",
		Functions: map[string]*value.Callable{
			"set": {
				CallKind: value.RuntimeCallable,
				Host:     noop,
				HostParams: []value.Param{
					{Name: "ttl", HasDefault: true, Default: value.Num(30)},
				},
			},
		},
		ParamSchemas: map[string]Schema{
			"set": Schema(`{"type": "number"}`),
		},
	}
	_, err := r.Register(ext)
	assert.NoError(t, err)
}

func TestDisposeCollectsEveryExtension(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	called := 0
	_, err := r.Register(&Extension{
		Name:      "kv",
		Functions: map[string]*value.Callable{},
		Dispose:   func() error { called++; return nil },
	})
	require.NoError(t, err)
	_, err = r.Register(&Extension{
		Name:      "fs",
		Functions: map[string]*value.Callable{},
		Dispose:   func() error { called++; return nil },
	})
	require.NoError(t, err)

	errs := r.Dispose()
	assert.Empty(t, errs)
	assert.Equal(t, 2, called)
}
