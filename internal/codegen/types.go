package codegen

import (
	"github.com/azswag/clientgen/internal/spec"
)

// Target type names for the Java-family client the emitter renders.
const (
	typeString  = "String"
	typeInteger = "Integer"
	typeLong    = "Long"
	typeDouble  = "Double"
	typeBoolean = "Boolean"
	typeObject  = "Object"
)

// mapType maps a schema node to an output type name. currentFile is the
// file the node's own $refs resolve against.
func (g *Generator) mapType(node *spec.SchemaNode, currentFile string) (string, error) {
	if node == nil {
		return typeObject, nil
	}
	if node.Ref != "" {
		def, err := g.idx.Resolve(node.Ref, currentFile)
		if err != nil {
			return "", err
		}
		return g.typeNameFor(def), nil
	}
	switch node.Type {
	case "string":
		if len(node.Enum) > 0 && node.XMSEnum != nil && node.XMSEnum.Name != "" {
			return enumTypeName(node.XMSEnum.Name), nil
		}
		// Anonymous enums degrade to plain strings.
		return typeString, nil
	case "integer":
		if node.Format == "int64" {
			return typeLong, nil
		}
		return typeInteger, nil
	case "number":
		return typeDouble, nil
	case "boolean":
		return typeBoolean, nil
	case "array":
		item, err := g.mapType(node.Items, currentFile)
		if err != nil {
			return "", err
		}
		return "List<" + item + ">", nil
	case "object":
		if ap := node.AdditionalProperties; ap != nil {
			if ap.Schema != nil {
				value, err := g.mapType(ap.Schema, currentFile)
				if err != nil {
					return "", err
				}
				return "Map<String, " + value + ">", nil
			}
			if ap.Allowed {
				return "Map<String, " + typeObject + ">", nil
			}
		}
		return typeObject, nil
	}
	return typeObject, nil
}

// typeNameFor applies the duplicate-aware naming rule to a resolved
// definition.
func (g *Generator) typeNameFor(def *spec.Definition) string {
	return TypeName(def.Name, def.SourceFile, g.idx.Duplicates())
}

// isEnumDefinition reports whether a standalone definition is itself an
// enumeration.
func isEnumDefinition(s *spec.SchemaNode) bool {
	return s != nil && s.Type == "string" && len(s.Enum) > 0
}

// collectTypeRefs gathers every $ref occupying a type position in a field
// schema: the node itself, array items, and typed map values. Properties of
// anonymous inline objects are not followed; those map to Object.
func collectTypeRefs(node *spec.SchemaNode, out *[]string) {
	if node == nil {
		return
	}
	if node.Ref != "" {
		*out = append(*out, node.Ref)
		return
	}
	collectTypeRefs(node.Items, out)
	if node.AdditionalProperties != nil {
		collectTypeRefs(node.AdditionalProperties.Schema, out)
	}
}
