package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Corpus for the end-to-end scenario: User references UserProfile across
// files, UserProfile inherits BaseProfile through allOf from a third file.
var userCorpus = map[string]string{
	"user.json": `{
  "paths": {
    "/users/{userId}": {
      "get": {
        "operationId": "Users_Get",
        "description": "Gets a user.",
        "parameters": [{"name": "userId", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"schema": {"$ref": "#/definitions/User"}}}
      }
    }
  },
  "definitions": {
    "User": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "email": {"type": "string"},
        "profile": {"$ref": "./profile.json#/definitions/UserProfile"}
      }
    }
  }
}`,
	"profile.json": `{
  "definitions": {
    "UserProfile": {
      "type": "object",
      "allOf": [{"$ref": "./common.json#/definitions/BaseProfile"}],
      "properties": {"avatarUrl": {"type": "string"}}
    }
  }
}`,
	"common.json": `{
  "definitions": {
    "BaseProfile": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "createdAt": {"type": "string"},
        "updatedAt": {"type": "string"}
      }
    }
  }
}`,
}

func typeByName(t *testing.T, res *Result, name string) GeneratedType {
	t.Helper()
	for _, gt := range res.Types {
		if gt.OutputName == name {
			return gt
		}
	}
	t.Fatalf("type %s not generated; have %v", name, typeNames(res))
	return GeneratedType{}
}

func typeNames(res *Result) []string {
	out := make([]string, 0, len(res.Types))
	for _, gt := range res.Types {
		out = append(out, gt.OutputName)
	}
	return out
}

func TestGenerate_EndToEnd(t *testing.T) {
	t.Parallel()
	_, g, _ := buildCorpus(t, userCorpus)

	res, err := g.Generate([]string{"Users_Get"})
	require.NoError(t, err)
	require.Len(t, res.Operations, 1)
	assert.Empty(t, res.Missing)

	op := res.Operations[0]
	assert.Equal(t, "getUsers", op.MethodName)
	assert.Equal(t, "User", op.ReturnType)

	user := typeByName(t, res, "User")
	require.Len(t, user.Fields, 3)
	assert.Equal(t, "profile", user.Fields[2].Name)
	assert.Equal(t, "UserProfile", user.Fields[2].TypeName)
	assert.Greater(t, user.SourceLine, 0)

	profile := typeByName(t, res, "UserProfile")
	var names []string
	for _, f := range profile.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "createdAt", "updatedAt", "avatarUrl"}, names)
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()
	_, g1, _ := buildCorpus(t, userCorpus)
	res1, err := g1.Generate([]string{"Users_Get"})
	require.NoError(t, err)

	_, g2, _ := buildCorpus(t, userCorpus)
	res2, err := g2.Generate([]string{"Users_Get"})
	require.NoError(t, err)

	assert.Equal(t, typeNames(res1), typeNames(res2))
	assert.Equal(t, res1.Operations, res2.Operations)
}

func TestGenerate_MissingOperationContinuesBatch(t *testing.T) {
	t.Parallel()
	_, g, warn := buildCorpus(t, userCorpus)

	res, err := g.Generate([]string{"Users_Get", "Nope_Get"})
	require.NoError(t, err)
	require.Len(t, res.Operations, 1)
	assert.Equal(t, []string{"Nope_Get"}, res.Missing)
	assert.Contains(t, warn.String(), "Nope_Get")
}

func TestGenerate_DuplicateNamesGetFilePrefixes(t *testing.T) {
	t.Parallel()
	_, g, _ := buildCorpus(t, map[string]string{
		"a.json": `{
  "paths": {
    "/resources/{name}": {
      "get": {
        "operationId": "Resources_Get",
        "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"schema": {"$ref": "#/definitions/Resource"}}}
      }
    }
  },
  "definitions": {
    "Resource": {
      "type": "object",
      "properties": {"unique": {"$ref": "#/definitions/UniqueThing"}}
    },
    "UniqueThing": {"type": "object", "properties": {"id": {"type": "string"}}}
  }
}`,
		"b.json": `{"definitions": {"Resource": {"type": "object"}}}`,
	})

	res, err := g.Generate([]string{"Resources_Get"})
	require.NoError(t, err)

	assert.Equal(t, "AResource", res.Operations[0].ReturnType)
	assert.Equal(t, []string{"AResource", "UniqueThing"}, typeNames(res))
	unique := typeByName(t, res, "AResource")
	assert.Equal(t, "UniqueThing", unique.Fields[0].TypeName)
}

func TestGenerate_EnumsAndSentinelData(t *testing.T) {
	t.Parallel()
	_, g, _ := buildCorpus(t, map[string]string{
		"svc.json": `{
  "paths": {
    "/accounts/{name}": {
      "get": {
        "operationId": "Accounts_Get",
        "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"schema": {"$ref": "#/definitions/Account"}}}
      }
    }
  },
  "definitions": {
    "Account": {
      "type": "object",
      "properties": {
        "state": {
          "type": "string",
          "enum": ["Active", "Inactive"],
          "x-ms-enum": {"name": "AccountState", "modelAsString": true}
        },
        "sku": {"$ref": "#/definitions/SkuName"},
        "class": {"type": "string"},
        "default-value": {"type": "string"}
      }
    },
    "SkuName": {
      "type": "string",
      "enum": ["Standard_LRS", "Standard_GRS"]
    }
  }
}`,
	})

	res, err := g.Generate([]string{"Accounts_Get"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Account", "AccountState", "SkuName"}, typeNames(res))

	account := typeByName(t, res, "Account")
	require.Len(t, account.Fields, 4)
	assert.Equal(t, "state", account.Fields[0].Name)
	assert.Equal(t, "AccountState", account.Fields[0].TypeName)

	// Reserved words and kebab-case map to safe identifiers but keep their
	// wire names.
	assert.Equal(t, "clazz", account.Fields[2].Name)
	assert.Equal(t, "class", account.Fields[2].WireName)
	assert.Equal(t, "defaultValue", account.Fields[3].Name)
	assert.Equal(t, "default-value", account.Fields[3].WireName)

	inline := typeByName(t, res, "AccountState")
	require.True(t, inline.IsEnum)
	require.Len(t, inline.Constants, 2)
	assert.Equal(t, EnumValue{Name: "ACTIVE", WireValue: "Active"}, inline.Constants[0])

	sku := typeByName(t, res, "SkuName")
	require.True(t, sku.IsEnum)
	assert.Equal(t, "STANDARD_LRS", sku.Constants[0].Name)
	assert.Greater(t, sku.SourceLine, 0)
}
