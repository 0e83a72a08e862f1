package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Typed corpus model. Every JSON document is decoded exactly once from a
// yaml.v3 node tree into these structs. JSON is a YAML subset, and the node
// tree carries two things encoding/json maps lose: source line numbers for
// traceability headers, and document key order for deterministic output.

// SchemaNode is the parsed representation of one schema. Only the keyword
// subset observed in the target corpus is modeled; anything else is ignored
// and the node maps to an opaque type downstream.
type SchemaNode struct {
	Ref                  string
	Type                 string
	Format               string
	Description          string
	Enum                 []string
	XMSEnum              *XMSEnum
	Properties           []Property // document order
	Required             []string
	AllOf                []*SchemaNode
	Items                *SchemaNode
	AdditionalProperties *AdditionalProperties
	Line                 int
}

// XMSEnum mirrors the x-ms-enum vendor extension.
type XMSEnum struct {
	Name          string
	ModelAsString bool
}

// Property is one named property in document order.
type Property struct {
	Name   string
	Schema *SchemaNode
}

// AdditionalProperties distinguishes `additionalProperties: true` from a
// typed value schema.
type AdditionalProperties struct {
	Allowed bool
	Schema  *SchemaNode
}

// Definition is one named schema together with its origin.
type Definition struct {
	Name       string
	SourceFile string // absolute path
	Line       int
	Schema     *SchemaNode
}

// Parameter is one entry of an operation's parameters list, either inline
// or a $ref into a parameters section, possibly in another file.
type Parameter struct {
	Ref         string
	Name        string
	In          string
	Required    bool
	Description string
	Type        string
	Format      string
}

// Operation is one (path, method) pair carrying an operationId.
type Operation struct {
	ID          string
	Method      string // upper-case HTTP method
	Path        string
	Description string
	Parameters  []Parameter
	Responses   map[string]string // status code -> response schema $ref ("" when absent)
	SourceFile  string
	Line        int
}

// mapPairs iterates a mapping node's key/value pairs in document order.
func mapPairs(n *yaml.Node, visit func(key string, keyNode, value *yaml.Node)) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		visit(n.Content[i].Value, n.Content[i], n.Content[i+1])
	}
}

func scalarSlice(n *yaml.Node) []string {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		out = append(out, c.Value)
	}
	return out
}

func schemaFromNode(n *yaml.Node) *SchemaNode {
	if n == nil {
		return nil
	}
	s := &SchemaNode{Line: n.Line}
	mapPairs(n, func(key string, _, v *yaml.Node) {
		switch key {
		case "$ref":
			s.Ref = v.Value
		case "type":
			s.Type = v.Value
		case "format":
			s.Format = v.Value
		case "description":
			s.Description = v.Value
		case "enum":
			s.Enum = scalarSlice(v)
		case "x-ms-enum":
			e := &XMSEnum{}
			mapPairs(v, func(k string, _, ev *yaml.Node) {
				switch k {
				case "name":
					e.Name = ev.Value
				case "modelAsString":
					e.ModelAsString = ev.Value == "true"
				}
			})
			s.XMSEnum = e
		case "properties":
			mapPairs(v, func(name string, _, pv *yaml.Node) {
				s.Properties = append(s.Properties, Property{Name: name, Schema: schemaFromNode(pv)})
			})
		case "required":
			s.Required = scalarSlice(v)
		case "allOf":
			if v.Kind == yaml.SequenceNode {
				for _, c := range v.Content {
					s.AllOf = append(s.AllOf, schemaFromNode(c))
				}
			}
		case "items":
			s.Items = schemaFromNode(v)
		case "additionalProperties":
			switch {
			case v.Kind == yaml.ScalarNode && v.Value == "true":
				s.AdditionalProperties = &AdditionalProperties{Allowed: true}
			case v.Kind == yaml.MappingNode:
				s.AdditionalProperties = &AdditionalProperties{Allowed: true, Schema: schemaFromNode(v)}
			}
		}
	})
	return s
}

func parameterFromNode(n *yaml.Node) Parameter {
	var p Parameter
	mapPairs(n, func(key string, _, v *yaml.Node) {
		switch key {
		case "$ref":
			p.Ref = v.Value
		case "name":
			p.Name = v.Value
		case "in":
			p.In = v.Value
		case "required":
			p.Required = v.Value == "true"
		case "description":
			p.Description = v.Value
		case "type":
			p.Type = v.Value
		case "format":
			p.Format = v.Value
		}
	})
	return p
}

// documentRoot unwraps the yaml document node down to the top-level mapping.
func documentRoot(doc *yaml.Node) (*yaml.Node, error) {
	if doc == nil || doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("not a JSON document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value is not an object")
	}
	return root, nil
}
