package translate_test

import (
	"encoding/json"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	translate "github.com/mcpbridge/mcpbridge/pkg/translate"
	assert "github.com/stretchr/testify/assert"
)

func listFilesDef() schema.ToolDefinition {
	return schema.ToolDefinition{
		Name:        "list_files",
		Description: "List the files in a directory",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {Type: "string", Description: "the directory to list"},
			},
			Required: []string{"path"},
		},
	}
}

func Test_translate_001(t *testing.T) {
	assert := assert.New(t)
	spec, err := translate.Function(listFilesDef())
	assert.NoError(err)
	assert.Equal("function", spec.Type)
	assert.Equal("list_files", spec.Function.Name)
	assert.Equal("List the files in a directory", spec.Function.Description)

	// Name, description and schema structure pass through
	var params map[string]any
	assert.NoError(json.Unmarshal(spec.Function.Parameters, &params))
	assert.Equal("object", params["type"])
	properties, ok := params["properties"].(map[string]any)
	assert.True(ok)
	assert.Contains(properties, "path")
}

func Test_translate_002(t *testing.T) {
	assert := assert.New(t)

	// A tool without a declared schema becomes an empty object schema
	spec, err := translate.Function(schema.ToolDefinition{Name: "interface_status"})
	assert.NoError(err)

	var params map[string]any
	assert.NoError(json.Unmarshal(spec.Function.Parameters, &params))
	assert.Equal("object", params["type"])
}

func Test_translate_003(t *testing.T) {
	assert := assert.New(t)

	// Unsupported constructs fail translation, naming the tool
	_, err := translate.Function(schema.ToolDefinition{
		Name:        "bad_ref",
		InputSchema: &jsonschema.Schema{Ref: "#/defs/thing"},
	})
	assert.Error(err)
	assert.Contains(err.Error(), "bad_ref")

	_, err = translate.Function(schema.ToolDefinition{
		Name: "bad_composition",
		InputSchema: &jsonschema.Schema{
			AllOf: []*jsonschema.Schema{{Type: "object"}},
		},
	})
	assert.Error(err)
	assert.Contains(err.Error(), "bad_composition")

	// Nested properties are checked too
	_, err = translate.Function(schema.ToolDefinition{
		Name: "bad_nested",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"inner": {Ref: "#/defs/thing"},
			},
		},
	})
	assert.Error(err)
	assert.Contains(err.Error(), "bad_nested")
}

func Test_translate_004(t *testing.T) {
	assert := assert.New(t)
	translator := translate.New()
	assert.NoError(translator.Load([]schema.ToolDefinition{
		listFilesDef(),
		{Name: "interface_status", Description: "Report interface state"},
	}))
	assert.Equal(2, translator.Len())
	assert.Equal([]string{"list_files", "interface_status"}, translator.Names())
	assert.Len(translator.Functions(), 2)

	def, exists := translator.Lookup("list_files")
	assert.True(exists)
	assert.Equal("list_files", def.Name)

	_, exists = translator.Lookup("no_such_tool")
	assert.False(exists)
}

func Test_translate_005(t *testing.T) {
	assert := assert.New(t)
	translator := translate.New()

	// Duplicate and empty names are rejected
	assert.Error(translator.Load([]schema.ToolDefinition{
		{Name: "ping"}, {Name: "ping"},
	}))
	assert.Error(translator.Load([]schema.ToolDefinition{{Name: ""}}))
}

func Test_translate_006(t *testing.T) {
	assert := assert.New(t)
	translator := translate.New()
	assert.NoError(translator.Load([]schema.ToolDefinition{listFilesDef()}))

	// Valid arguments
	assert.NoError(translator.Validate("list_files", json.RawMessage(`{"path":"/tmp"}`)))

	// Missing required argument
	assert.Error(translator.Validate("list_files", json.RawMessage(`{}`)))

	// Empty input is validated as an empty object
	assert.Error(translator.Validate("list_files", nil))

	// Wrong type
	assert.Error(translator.Validate("list_files", json.RawMessage(`{"path":42}`)))

	// Not an object
	assert.Error(translator.Validate("list_files", json.RawMessage(`"just a string"`)))

	// Unknown tool
	assert.Error(translator.Validate("no_such_tool", json.RawMessage(`{}`)))
}

func Test_translate_007(t *testing.T) {
	assert := assert.New(t)

	// Cache-free validation against a single definition
	def := listFilesDef()
	assert.NoError(translate.ValidateInput(def, json.RawMessage(`{"path":"/tmp"}`)))
	assert.Error(translate.ValidateInput(def, json.RawMessage(`{"path":42}`)))
}

func Test_translate_008(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Tool executed successfully (no output)", translate.Fragment(""))
	assert.Equal("eth0 up", translate.Fragment("eth0 up"))
}
