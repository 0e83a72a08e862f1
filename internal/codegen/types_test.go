package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azswag/clientgen/internal/spec"
)

func TestMapType_Primitives(t *testing.T) {
	t.Parallel()
	_, g, _ := buildCorpus(t, nil)

	tests := []struct {
		name string
		node *spec.SchemaNode
		want string
	}{{
		name: "string",
		node: &spec.SchemaNode{Type: "string"},
		want: "String",
	}, {
		name: "int32",
		node: &spec.SchemaNode{Type: "integer"},
		want: "Integer",
	}, {
		name: "int64",
		node: &spec.SchemaNode{Type: "integer", Format: "int64"},
		want: "Long",
	}, {
		name: "number",
		node: &spec.SchemaNode{Type: "number", Format: "double"},
		want: "Double",
	}, {
		name: "boolean",
		node: &spec.SchemaNode{Type: "boolean"},
		want: "Boolean",
	}, {
		name: "array of string",
		node: &spec.SchemaNode{Type: "array", Items: &spec.SchemaNode{Type: "string"}},
		want: "List<String>",
	}, {
		name: "array of array",
		node: &spec.SchemaNode{Type: "array", Items: &spec.SchemaNode{Type: "array", Items: &spec.SchemaNode{Type: "integer"}}},
		want: "List<List<Integer>>",
	}, {
		name: "untyped map",
		node: &spec.SchemaNode{Type: "object", AdditionalProperties: &spec.AdditionalProperties{Allowed: true}},
		want: "Map<String, Object>",
	}, {
		name: "typed map",
		node: &spec.SchemaNode{Type: "object", AdditionalProperties: &spec.AdditionalProperties{Allowed: true, Schema: &spec.SchemaNode{Type: "integer"}}},
		want: "Map<String, Integer>",
	}, {
		name: "bare object",
		node: &spec.SchemaNode{Type: "object"},
		want: "Object",
	}, {
		name: "untyped node",
		node: &spec.SchemaNode{},
		want: "Object",
	}, {
		name: "named inline enum",
		node: &spec.SchemaNode{Type: "string", Enum: []string{"A", "B"}, XMSEnum: &spec.XMSEnum{Name: "Provisioning State"}},
		want: "ProvisioningState",
	}, {
		name: "anonymous enum falls back to string",
		node: &spec.SchemaNode{Type: "string", Enum: []string{"A", "B"}},
		want: "String",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.mapType(tt.node, "")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMapType_RefResolvesToTypeName(t *testing.T) {
	t.Parallel()
	idx, g, _ := buildCorpus(t, map[string]string{
		"a.json": `{"definitions": {"Gateway": {"type": "object"}}}`,
	})
	file := idx.DefinitionsNamed("Gateway")[0].SourceFile

	got, err := g.mapType(&spec.SchemaNode{Ref: "#/definitions/Gateway"}, file)
	require.NoError(t, err)
	require.Equal(t, "Gateway", got)

	got, err = g.mapType(&spec.SchemaNode{Type: "array", Items: &spec.SchemaNode{Ref: "#/definitions/Gateway"}}, file)
	require.NoError(t, err)
	require.Equal(t, "List<Gateway>", got)
}

func TestMapType_UnresolvableRefFails(t *testing.T) {
	t.Parallel()
	idx, g, _ := buildCorpus(t, map[string]string{
		"a.json": `{"definitions": {"Gateway": {"type": "object"}}}`,
	})
	file := idx.DefinitionsNamed("Gateway")[0].SourceFile

	_, err := g.mapType(&spec.SchemaNode{Ref: "#/definitions/Missing"}, file)
	require.Equal(t, spec.ReferenceNotFound, spec.CodeOf(err))
}
