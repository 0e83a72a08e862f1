package spec

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Index holds every definition and operation found under one corpus root.
// It is built fresh per generation run and discarded afterwards; nothing in
// it is mutated after Load returns.
type Index struct {
	Root string

	defsByName  map[string][]*Definition
	defsByFile  map[string]map[string]*Definition // abs path -> name -> definition
	filesByBase map[string][]string               // basename -> abs paths, sorted
	ops         map[string]*Operation
	duplicates  map[string]bool

	warnw io.Writer
}

// LoadOption mutates loader behavior.
type LoadOption func(*Index)

// WithWarnWriter redirects non-fatal skip warnings; defaults to os.Stderr.
func WithWarnWriter(w io.Writer) LoadOption {
	return func(idx *Index) { idx.warnw = w }
}

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Load walks rootDir recursively, parsing every .json file into the index.
// Files that fail to parse are logged and skipped; the walk continues.
func Load(rootDir string, opts ...LoadOption) (*Index, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, &CorpusError{Code: IOFailure, Message: fmt.Sprintf("resolve specs root %s: %v", rootDir, err), File: rootDir, Cause: err}
	}
	idx := &Index{
		Root:        abs,
		defsByName:  map[string][]*Definition{},
		defsByFile:  map[string]map[string]*Definition{},
		filesByBase: map[string][]string{},
		ops:         map[string]*Operation{},
		duplicates:  map[string]bool{},
		warnw:       os.Stderr,
	}
	for _, opt := range opts {
		opt(idx)
	}

	// WalkDir visits entries in lexical order, which keeps last-scanned-wins
	// operation collisions deterministic across runs.
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		if ferr := idx.loadFile(path); ferr != nil {
			fmt.Fprintf(idx.warnw, "[WARN] skipping %s: %v\n", path, ferr)
		}
		return nil
	})
	if walkErr != nil {
		return nil, &CorpusError{Code: IOFailure, Message: fmt.Sprintf("walk %s: %v", abs, walkErr), File: abs, Cause: walkErr}
	}

	for name, defs := range idx.defsByName {
		files := map[string]bool{}
		for _, d := range defs {
			files[d.SourceFile] = true
		}
		if len(files) > 1 {
			idx.duplicates[name] = true
		}
	}
	return idx, nil
}

func (idx *Index) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	root, err := documentRoot(&doc)
	if err != nil {
		return err
	}

	fileDefs := map[string]*Definition{}
	mapPairs(root, func(key string, _, v *yaml.Node) {
		switch key {
		case "definitions":
			mapPairs(v, func(name string, keyNode, schema *yaml.Node) {
				def := &Definition{
					Name:       name,
					SourceFile: path,
					Line:       keyNode.Line,
					Schema:     schemaFromNode(schema),
				}
				fileDefs[name] = def
				idx.defsByName[name] = append(idx.defsByName[name], def)
			})
		case "paths":
			idx.loadPaths(path, v)
		}
	})
	idx.defsByFile[path] = fileDefs
	base := filepath.Base(path)
	idx.filesByBase[base] = append(idx.filesByBase[base], path)
	sort.Strings(idx.filesByBase[base])
	return nil
}

func (idx *Index) loadPaths(path string, paths *yaml.Node) {
	mapPairs(paths, func(urlPath string, _, item *yaml.Node) {
		mapPairs(item, func(method string, _, opNode *yaml.Node) {
			var ok bool
			for _, m := range httpMethods {
				if method == m {
					ok = true
					break
				}
			}
			if !ok {
				return
			}
			op := &Operation{
				Method:     strings.ToUpper(method),
				Path:       urlPath,
				Responses:  map[string]string{},
				SourceFile: path,
				Line:       opNode.Line,
			}
			mapPairs(opNode, func(key string, _, v *yaml.Node) {
				switch key {
				case "operationId":
					op.ID = v.Value
				case "description":
					op.Description = v.Value
				case "parameters":
					if v.Kind == yaml.SequenceNode {
						for _, p := range v.Content {
							op.Parameters = append(op.Parameters, parameterFromNode(p))
						}
					}
				case "responses":
					mapPairs(v, func(code string, _, resp *yaml.Node) {
						ref := ""
						mapPairs(resp, func(rk string, _, rv *yaml.Node) {
							if rk != "schema" {
								return
							}
							mapPairs(rv, func(sk string, _, sv *yaml.Node) {
								if sk == "$ref" {
									ref = sv.Value
								}
							})
						})
						op.Responses[code] = ref
					})
				}
			})
			if op.ID == "" {
				return
			}
			// Last one scanned wins on operationId collisions; the sorted
			// walk makes that deterministic.
			idx.ops[op.ID] = op
		})
	})
}

// Operation returns the operation with the given id, or SpecNotFound.
func (idx *Index) Operation(id string) (*Operation, error) {
	op, ok := idx.ops[id]
	if !ok {
		return nil, &CorpusError{
			Code:    SpecNotFound,
			Message: fmt.Sprintf("operation %q not found in any spec under %s", id, idx.Root),
		}
	}
	return op, nil
}

// Operations returns all indexed operation ids, sorted.
func (idx *Index) Operations() []string {
	ids := make([]string, 0, len(idx.ops))
	for id := range idx.ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefinitionsNamed returns every definition with the given bare name, in
// sorted source-file order.
func (idx *Index) DefinitionsNamed(name string) []*Definition {
	defs := append([]*Definition(nil), idx.defsByName[name]...)
	sort.Slice(defs, func(i, j int) bool { return defs[i].SourceFile < defs[j].SourceFile })
	return defs
}

// Duplicates returns the set of bare definition names that occur under more
// than one source file.
func (idx *Index) Duplicates() map[string]bool { return idx.duplicates }

// SelectLatest picks the preferred definition among same-named candidates:
// stable outranks preview, latest date wins among equals.
func SelectLatest(candidates []*Definition) *Definition {
	var best *Definition
	for _, c := range candidates {
		if best == nil || versionOf(c.SourceFile).newer(versionOf(best.SourceFile)) {
			best = c
		}
	}
	return best
}

func (idx *Index) definitionsIn(file string) []string {
	names := make([]string, 0, len(idx.defsByFile[file]))
	for n := range idx.defsByFile[file] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
