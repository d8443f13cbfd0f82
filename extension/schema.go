package extension

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// Schema is a raw JSON Schema document, Draft 2020-12, describing the
// shape a parameter's default value must take. Kept as json.RawMessage
// so callers can embed schemas as Go struct literals or load them from
// a config file without an intermediate unmarshal step.
type Schema = json.RawMessage

func compileSchema(name string, schema Schema) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("extension %q: schema add: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("extension %q: schema compile: %w", name, err)
	}
	return compiled, nil
}

// validateParamSchemas checks every function named in ext.ParamSchemas
// against that function's declared HostParams defaults. A function with
// no HasDefault param is validated as null, matching the "parameter
// omitted" case.
func validateParamSchemas(ext *Extension) error {
	for fnName, schema := range ext.ParamSchemas {
		callable, ok := ext.Functions[fnName]
		if !ok {
			return rillerr.New(rillerr.CodeInvalidConfig, ast.Span{},
				fmt.Sprintf("extension %q: schema given for undefined function %q", ext.Name, fnName))
		}
		compiled, err := compileSchema(ext.Name+"."+fnName, schema)
		if err != nil {
			return rillerr.Wrap(rillerr.CodeInvalidConfig, ast.Span{},
				fmt.Sprintf("extension %q: invalid schema for %q", ext.Name, fnName), err)
		}
		for _, p := range callable.HostParams {
			var sample any
			if p.HasDefault {
				sample = toJSONSample(p.Default)
			}
			if err := compiled.Validate(sample); err != nil {
				return rillerr.Wrap(rillerr.CodeInvalidConfig, ast.Span{},
					fmt.Sprintf("extension %q: function %q param %q fails its schema", ext.Name, fnName, p.Name), err)
			}
		}
	}
	return nil
}

// toJSONSample round-trips a default through value.ToJSON/json.Unmarshal
// so the jsonschema validator sees plain Go any (map/slice/float64/...)
// rather than rill's own Value types.
func toJSONSample(v value.Value) any {
	encoded, err := value.ToJSON(v)
	if err != nil {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		return nil
	}
	return decoded
}
