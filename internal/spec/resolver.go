package spec

import (
	"fmt"
	"path/filepath"
	"strings"
)

const defsFragment = "#/definitions/"

// Resolve resolves a $ref against currentFile (the absolute path of the
// document containing the reference) into the definition it names.
//
// Three shapes are accepted:
//
//	#/definitions/Name                 local to currentFile
//	./other.json#/definitions/Name     same directory as currentFile
//	..[/..]/dir/file.json#/definitions/Name
//
// The third shape is resolved by the file's basename against the whole
// loaded corpus rather than by literal filesystem path: the same basename
// legitimately appears under several spec sub-trees, and the literal
// relative path frequently escapes the walk root.
func (idx *Index) Resolve(ref, currentFile string) (*Definition, error) {
	if name, ok := strings.CutPrefix(ref, defsFragment); ok {
		if name == "" || strings.Contains(name, "/") {
			return nil, malformedRef(ref, currentFile)
		}
		def := idx.defsByFile[currentFile][name]
		if def == nil {
			return nil, idx.refNotFound(ref, name, []string{currentFile})
		}
		return def, nil
	}

	i := strings.Index(ref, ".json"+defsFragment)
	if i < 0 {
		return nil, malformedRef(ref, currentFile)
	}
	filePart := ref[:i+len(".json")]
	name := ref[i+len(".json")+len(defsFragment):]
	if name == "" || strings.Contains(name, "/") {
		return nil, malformedRef(ref, currentFile)
	}

	// Same-directory relative reference: resolve literally.
	if rest, ok := strings.CutPrefix(filePart, "./"); ok && !strings.Contains(rest, "/") {
		target := filepath.Join(filepath.Dir(currentFile), rest)
		if _, loaded := idx.defsByFile[target]; !loaded {
			return nil, &CorpusError{
				Code:    ReferenceNotFound,
				Message: fmt.Sprintf("reference %q in %s: no definitions loaded from %s", ref, currentFile, target),
				File:    currentFile,
				Ref:     ref,
			}
		}
		def := idx.defsByFile[target][name]
		if def == nil {
			return nil, idx.refNotFound(ref, name, []string{target})
		}
		return def, nil
	}

	// Cross-directory reference: look the basename up across the corpus.
	base := filepath.Base(filepath.FromSlash(filePart))
	files := idx.filesByBase[base]
	if len(files) == 0 {
		return nil, &CorpusError{
			Code:    ReferenceNotFound,
			Message: fmt.Sprintf("reference %q in %s: no file named %s anywhere in the corpus", ref, currentFile, base),
			File:    currentFile,
			Ref:     ref,
		}
	}
	var candidates []*Definition
	for _, f := range files {
		if def := idx.defsByFile[f][name]; def != nil {
			candidates = append(candidates, def)
		}
	}
	if len(candidates) == 0 {
		return nil, idx.refNotFound(ref, name, files)
	}
	return SelectLatest(candidates), nil
}

func malformedRef(ref, file string) error {
	return &CorpusError{
		Code:    MalformedReference,
		Message: fmt.Sprintf("reference %q in %s matches no supported shape (#/definitions/Name, ./file.json#/definitions/Name, or path/file.json#/definitions/Name)", ref, file),
		File:    file,
		Ref:     ref,
	}
}

// refNotFound builds the ReferenceNotFound error, enumerating the sibling
// definition names available in the target file(s) so a broken corpus can
// be debugged from the message alone.
func (idx *Index) refNotFound(ref, name string, files []string) error {
	seen := map[string]bool{}
	var siblings []string
	for _, f := range files {
		for _, n := range idx.definitionsIn(f) {
			if !seen[n] {
				seen[n] = true
				siblings = append(siblings, n)
			}
		}
	}
	avail := "none"
	if len(siblings) > 0 {
		avail = strings.Join(siblings, ", ")
	}
	return &CorpusError{
		Code:    ReferenceNotFound,
		Message: fmt.Sprintf("reference %q: definition %q not found in %s; available definitions: %s", ref, name, strings.Join(files, ", "), avail),
		Ref:     ref,
	}
}
