/*
translate converts between the tool-provider's tool descriptors and the
model backend's function-calling representation. The mapping functions are
pure and perform no I/O; the Translator additionally holds the descriptor
cache populated once during bridge setup.
*/
package translate

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	bridge "github.com/mcpbridge/mcpbridge"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Translator caches tool definitions and their translated function specs.
// It is populated once by the lifecycle manager and read-only afterwards.
type Translator struct {
	defs     map[string]schema.ToolDefinition
	resolved map[string]*jsonschema.Resolved
	specs    []schema.FunctionSpec
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an empty translator with no tools
func New() *Translator {
	return &Translator{
		defs:     make(map[string]schema.ToolDefinition),
		resolved: make(map[string]*jsonschema.Resolved),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Load translates the given tool definitions and populates the cache.
// It returns an error naming the first tool whose schema cannot be
// translated, so the caller knows which tool is unusable.
func (t *Translator) Load(defs []schema.ToolDefinition) error {
	for _, def := range defs {
		if def.Name == "" {
			return bridge.ErrBadParameter.With("tool definition with empty name")
		}
		if _, exists := t.defs[def.Name]; exists {
			return bridge.ErrConflict.Withf("duplicate tool name: %q", def.Name)
		}

		spec, err := Function(def)
		if err != nil {
			return err
		}

		resolved, err := inputSchema(def).Resolve(nil)
		if err != nil {
			return bridge.ErrBadParameter.Withf("tool %q: schema resolution failed: %v", def.Name, err)
		}

		t.defs[def.Name] = def
		t.resolved[def.Name] = resolved
		t.specs = append(t.specs, spec)
	}
	return nil
}

// Functions returns the translated function specs, in load order
func (t *Translator) Functions() []schema.FunctionSpec {
	return t.specs
}

// Lookup returns the cached definition for a tool name
func (t *Translator) Lookup(name string) (schema.ToolDefinition, bool) {
	def, exists := t.defs[name]
	return def, exists
}

// Names returns the cached tool names, in load order
func (t *Translator) Names() []string {
	names := make([]string, 0, len(t.specs))
	for _, spec := range t.specs {
		names = append(names, spec.Function.Name)
	}
	return names
}

// Len returns the number of cached tools
func (t *Translator) Len() int {
	return len(t.defs)
}

// Validate checks JSON-encoded arguments against the declared input schema
// of the named tool. An empty input is validated as an empty object, so
// missing required arguments are still rejected.
func (t *Translator) Validate(name string, input json.RawMessage) error {
	resolved, exists := t.resolved[name]
	if !exists {
		return bridge.ErrNotFound.Withf("tool not found: %q", name)
	}

	args := make(map[string]any)
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return bridge.ErrBadParameter.Withf("tool %q: arguments are not a JSON object: %v", name, err)
		}
	}
	if err := resolved.Validate(args); err != nil {
		return bridge.ErrBadParameter.Withf("tool %q: %v", name, err)
	}
	return nil
}

// ValidateInput checks JSON-encoded arguments against a single tool
// definition without a cache. Used by callers that hold the definition
// directly.
func ValidateInput(def schema.ToolDefinition, input json.RawMessage) error {
	resolved, err := inputSchema(def).Resolve(nil)
	if err != nil {
		return bridge.ErrBadParameter.Withf("tool %q: schema resolution failed: %v", def.Name, err)
	}

	args := make(map[string]any)
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return bridge.ErrBadParameter.Withf("tool %q: arguments are not a JSON object: %v", def.Name, err)
		}
	}
	if err := resolved.Validate(args); err != nil {
		return bridge.ErrBadParameter.Withf("tool %q: %v", def.Name, err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// MAPPING FUNCTIONS

// Function maps a tool definition to the backend's function-call spec.
// The name and description pass through verbatim; the input schema is
// structurally translated. Unsupported schema constructs fail translation
// explicitly rather than silently dropping constraints.
func Function(def schema.ToolDefinition) (schema.FunctionSpec, error) {
	s := inputSchema(def)
	if err := checkSchema(def.Name, s); err != nil {
		return schema.FunctionSpec{}, err
	}

	params, err := json.Marshal(s)
	if err != nil {
		return schema.FunctionSpec{}, bridge.ErrBadParameter.Withf("tool %q: %v", def.Name, err)
	}

	return schema.FunctionSpec{
		Type: "function",
		Function: schema.FunctionDef{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  params,
		},
	}, nil
}

// Fragment flattens a tool result payload into a message fragment the
// model can consume. Empty payloads produce a fixed confirmation string
// so the model always receives an answer for every call.
func Fragment(payload string) string {
	if payload == "" {
		return "Tool executed successfully (no output)"
	}
	return payload
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// inputSchema returns the declared input schema, or an empty object schema
// when the tool declares none
func inputSchema(def schema.ToolDefinition) *jsonschema.Schema {
	if def.InputSchema == nil {
		return &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		}
	}
	return def.InputSchema
}

// checkSchema walks the schema and rejects constructs the backend's
// function-calling representation cannot express
func checkSchema(tool string, s *jsonschema.Schema) error {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		return bridge.ErrNotImplemented.Withf("tool %q: schema uses $ref", tool)
	}
	if len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0 || s.Not != nil {
		return bridge.ErrNotImplemented.Withf("tool %q: schema uses composition", tool)
	}
	if s.Type != "" && !isPrimitiveType(s.Type) {
		return bridge.ErrNotImplemented.Withf("tool %q: unsupported schema type %q", tool, s.Type)
	}
	for _, t := range s.Types {
		if !isPrimitiveType(t) {
			return bridge.ErrNotImplemented.Withf("tool %q: unsupported schema type %q", tool, t)
		}
	}
	for _, property := range s.Properties {
		if err := checkSchema(tool, property); err != nil {
			return err
		}
	}
	if err := checkSchema(tool, s.Items); err != nil {
		return err
	}
	return checkSchema(tool, s.AdditionalProperties)
}

func isPrimitiveType(t string) bool {
	switch t {
	case "object", "array", "string", "number", "integer", "boolean", "null":
		return true
	}
	return false
}
