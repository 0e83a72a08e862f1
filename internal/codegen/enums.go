package codegen

import (
	"sort"

	"github.com/azswag/clientgen/internal/spec"
)

// InlineEnumEntry is an enumeration declared directly on a property rather
// than as a standalone definition. Entries are collected once per run,
// keyed by cleaned name, and emitted as standalone types alongside the
// records that referenced them.
type InlineEnumEntry struct {
	Name        string // cleaned x-ms-enum name
	Values      []string
	Description string
}

// harvestInlineEnums walks a schema recursively, recording every node that
// matches the named inline-enum shape into the run-scoped accumulator.
// $refs are not followed; their targets are standalone definitions that get
// harvested when generated.
func (g *Generator) harvestInlineEnums(node *spec.SchemaNode) {
	if node == nil || node.Ref != "" {
		return
	}
	if node.Type == "string" && len(node.Enum) > 0 && node.XMSEnum != nil && node.XMSEnum.Name != "" {
		name := cleanEnumName(node.XMSEnum.Name)
		if _, ok := g.inlineEnums[name]; !ok {
			g.inlineEnums[name] = &InlineEnumEntry{
				Name:        name,
				Values:      append([]string(nil), node.Enum...),
				Description: node.Description,
			}
		}
		return
	}
	for _, p := range node.Properties {
		g.harvestInlineEnums(p.Schema)
	}
	g.harvestInlineEnums(node.Items)
	if node.AdditionalProperties != nil {
		g.harvestInlineEnums(node.AdditionalProperties.Schema)
	}
	for _, b := range node.AllOf {
		g.harvestInlineEnums(b)
	}
}

// enumConstants builds the declared constant list for a set of wire values,
// deduplicating constant-name collisions in favor of the first value.
func enumConstants(values []string) []EnumValue {
	seen := map[string]bool{}
	out := make([]EnumValue, 0, len(values))
	for _, v := range values {
		name := EnumConstant(v)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, EnumValue{Name: name, WireValue: v})
	}
	return out
}

// inlineEnumTypes renders the accumulated inline enums as generated types,
// sorted by output name for deterministic emission.
func (g *Generator) inlineEnumTypes() []GeneratedType {
	names := make([]string, 0, len(g.inlineEnums))
	for n := range g.inlineEnums {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]GeneratedType, 0, len(names))
	for _, n := range names {
		e := g.inlineEnums[n]
		out = append(out, GeneratedType{
			OutputName:  enumTypeName(e.Name),
			IsEnum:      true,
			Constants:   enumConstants(e.Values),
			Description: e.Description,
		})
	}
	return out
}
