package javaemitter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/azswag/clientgen/internal/codegen"
)

// Options controls how the emitter renders a generation batch.
type Options struct {
	OutDir  string // required; target directory to write sources into
	Package string // target package/namespace; defaults to DefaultPackage
	Force   bool   // overwrite a non-empty output directory
	DryRun  bool   // don't write, only plan
}

// DefaultPackage is used when Options.Package is empty.
const DefaultPackage = "com.azswag.client"

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and the resolved package name.
type Result struct {
	Package string
	Planned []PlannedFile
}

// Emit renders one source unit per generated type plus a single client
// interface listing every compiled method. Rendering is deterministic:
// the same batch always produces byte-identical files in the same order.
func Emit(res *codegen.Result, opts Options) (*Result, error) {
	if res == nil {
		return nil, fmt.Errorf("javaemitter: nil result")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("javaemitter: OutDir is required")
	}
	pkg := strings.TrimSpace(opts.Package)
	if pkg == "" {
		pkg = DefaultPackage
	}

	files := map[string][]byte{}
	for _, gt := range res.Types {
		rendered, err := renderType(pkg, gt)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", gt.OutputName, err)
		}
		files[gt.OutputName+".java"] = rendered
	}
	if len(res.Operations) > 0 {
		rendered, err := renderClient(pkg, res.Operations)
		if err != nil {
			return nil, fmt.Errorf("render client: %w", err)
		}
		files["Client.java"] = rendered
	}

	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}
	return &Result{Package: pkg, Planned: planned}, nil
}

func renderType(pkg string, gt codegen.GeneratedType) ([]byte, error) {
	tmpl := recordTemplate
	if gt.IsEnum {
		tmpl = enumTemplate
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Package string
		codegen.GeneratedType
	}{Package: pkg, GeneratedType: gt})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderClient(pkg string, ops []codegen.CompiledOperation) ([]byte, error) {
	var buf bytes.Buffer
	err := clientTemplate.Execute(&buf, struct {
		Package    string
		Operations []codegen.CompiledOperation
	}{Package: pkg, Operations: ops})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	if st, serr := os.Stat(abs); serr == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("javaemitter: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
