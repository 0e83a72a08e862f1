package codegen

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/azswag/clientgen/internal/spec"
)

// Generator compiles requested operations against a loaded corpus index.
// All accumulated state (inline enums, the external parameter-file cache)
// is scoped to one generation run.
type Generator struct {
	idx         *spec.Index
	warnw       io.Writer
	inlineEnums map[string]*InlineEnumEntry
	paramFiles  map[string]map[string]spec.Parameter
}

// Option mutates generator behavior.
type Option func(*Generator)

// WithWarnWriter redirects non-fatal warnings; defaults to os.Stderr.
func WithWarnWriter(w io.Writer) Option {
	return func(g *Generator) { g.warnw = w }
}

// New builds a generator over idx.
func New(idx *spec.Index, opts ...Option) *Generator {
	g := &Generator{
		idx:         idx,
		warnw:       os.Stderr,
		inlineEnums: map[string]*InlineEnumEntry{},
		paramFiles:  map[string]map[string]spec.Parameter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate compiles every requested operation id and collects the full set
// of types reachable from their return types. Requested ids missing from
// the corpus are reported in Result.Missing and the batch continues;
// resolution failures abort the run.
func (g *Generator) Generate(operationIDs []string) (*Result, error) {
	ids := append([]string(nil), operationIDs...)
	sort.Strings(ids)

	res := &Result{}
	var queue []*spec.Definition
	for _, id := range ids {
		op, err := g.idx.Operation(id)
		if err != nil {
			fmt.Fprintf(g.warnw, "[WARN] %v\n", err)
			res.Missing = append(res.Missing, id)
			continue
		}
		// Only GET operations become callable methods in this pass; the
		// rest stay indexed but produce nothing.
		if op.Method != "GET" {
			fmt.Fprintf(g.warnw, "[WARN] %s: %s operations are not compiled, skipping\n", id, op.Method)
			res.Missing = append(res.Missing, id)
			continue
		}
		compiled, def, err := g.Compile(op)
		if err != nil {
			return nil, err
		}
		res.Operations = append(res.Operations, *compiled)
		if def != nil {
			queue = append(queue, def)
		}
	}

	emitted := map[string]bool{}
	for len(queue) > 0 {
		def := queue[0]
		queue = queue[1:]
		name := g.typeNameFor(def)
		if emitted[name] {
			continue
		}
		emitted[name] = true
		gt, referenced, err := g.buildType(def)
		if err != nil {
			return nil, err
		}
		res.Types = append(res.Types, gt)
		queue = append(queue, referenced...)
	}

	for _, e := range g.inlineEnumTypes() {
		if !emitted[e.OutputName] {
			emitted[e.OutputName] = true
			res.Types = append(res.Types, e)
		}
	}
	sort.Slice(res.Types, func(i, j int) bool {
		return res.Types[i].OutputName < res.Types[j].OutputName
	})
	return res, nil
}

// buildType renders one definition into a generated type and returns the
// definitions its fields reference, for the transitive closure.
func (g *Generator) buildType(def *spec.Definition) (GeneratedType, []*spec.Definition, error) {
	gt := GeneratedType{
		OutputName:  g.typeNameFor(def),
		Description: def.Schema.Description,
		SourceFile:  def.SourceFile,
		SourceLine:  def.Line,
	}

	if isEnumDefinition(def.Schema) {
		gt.IsEnum = true
		gt.Constants = enumConstants(def.Schema.Enum)
		return gt, nil, nil
	}

	merged, err := g.idx.MergeFields(def.Schema, def.SourceFile)
	if err != nil {
		return GeneratedType{}, nil, err
	}

	var referenced []*spec.Definition
	seen := map[string]bool{}
	for _, f := range merged {
		fieldName := FieldName(f.WireName)
		// First occurrence of an output field name wins: inherited branches
		// merge ahead of direct properties, so a base field shadows a
		// same-named direct one.
		if seen[fieldName] {
			continue
		}
		seen[fieldName] = true

		g.harvestInlineEnums(f.Schema)
		typeName, err := g.mapType(f.Schema, f.SourceFile)
		if err != nil {
			return GeneratedType{}, nil, err
		}
		var desc string
		if f.Schema != nil {
			desc = f.Schema.Description
		}
		gt.Fields = append(gt.Fields, Field{
			Name:        fieldName,
			TypeName:    typeName,
			WireName:    f.WireName,
			Required:    f.Required,
			Description: desc,
		})

		var refs []string
		collectTypeRefs(f.Schema, &refs)
		for _, r := range refs {
			rd, err := g.idx.Resolve(r, f.SourceFile)
			if err != nil {
				return GeneratedType{}, nil, err
			}
			referenced = append(referenced, rd)
		}
	}
	return gt, referenced, nil
}
