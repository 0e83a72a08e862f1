package spec

// MergedField is one property of a fully expanded definition. SourceFile is
// the file whose definitions the property schema's own nested $refs resolve
// against, which may differ from the file of the definition being expanded.
type MergedField struct {
	WireName   string
	Schema     *SchemaNode
	SourceFile string
	Required   bool
}

// MergeFields expands schema's allOf chain into a flat ordered property
// list: inherited branches first, direct properties last. Duplicate wire
// names keep the first occurrence, so a base type's property shadows a
// same-named direct one.
//
// The visited set holds literal $ref strings already expanded in this call,
// which makes self- and mutually-referential allOf chains terminate with
// only the fields reachable before the repeat.
func (idx *Index) MergeFields(schema *SchemaNode, currentFile string) ([]MergedField, error) {
	var out []MergedField
	err := idx.mergeInto(schema, currentFile, map[string]bool{}, map[string]bool{}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (idx *Index) mergeInto(schema *SchemaNode, file string, visited, seen map[string]bool, out *[]MergedField) error {
	if schema == nil {
		return nil
	}
	for _, branch := range schema.AllOf {
		branchSchema, branchFile := branch, file
		if branch.Ref != "" {
			if visited[branch.Ref] {
				continue
			}
			visited[branch.Ref] = true
			def, err := idx.Resolve(branch.Ref, file)
			if err != nil {
				return err
			}
			branchSchema, branchFile = def.Schema, def.SourceFile
		}
		if err := idx.mergeInto(branchSchema, branchFile, visited, seen, out); err != nil {
			return err
		}
	}

	required := map[string]bool{}
	for _, r := range schema.Required {
		required[r] = true
	}
	for _, p := range schema.Properties {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		*out = append(*out, MergedField{
			WireName:   p.Name,
			Schema:     p.Schema,
			SourceFile: file,
			Required:   required[p.Name],
		})
	}
	return nil
}
