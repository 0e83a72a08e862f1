package spec

import (
	"strings"
	"testing"
)

func TestResolve_Local(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeSpec(t, dir, "a.json", `{"definitions": {"Widget": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, err := idx.Resolve("#/definitions/Widget", path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.Name != "Widget" || def.SourceFile != path {
		t.Fatalf("resolved %+v", def)
	}
}

func TestResolve_LocalMissingListsSiblings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeSpec(t, dir, "a.json", `{"definitions": {"Widget": {"type": "object"}, "Gear": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = idx.Resolve("#/definitions/Sprocket", path)
	if CodeOf(err) != ReferenceNotFound {
		t.Fatalf("expected ReferenceNotFound, got %v", err)
	}
	if !IsFatal(err) {
		t.Fatalf("ReferenceNotFound must be fatal")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Gear") || !strings.Contains(msg, "Widget") {
		t.Fatalf("message must enumerate sibling definitions, got %q", msg)
	}
}

func TestResolve_SameDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	from := writeSpec(t, dir, "svc/a.json", `{"definitions": {}}`)
	writeSpec(t, dir, "svc/b.json", `{"definitions": {"Shared": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, err := idx.Resolve("./b.json#/definitions/Shared", from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.Name != "Shared" {
		t.Fatalf("resolved %+v", def)
	}
}

func TestResolve_CrossDirectoryByBasename(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	from := writeSpec(t, dir, "network/stable/2023-02-01/gateway.json", `{"definitions": {}}`)
	writeSpec(t, dir, "common/stable/2021-05-01/common.json", `{"definitions": {"ErrorDetail": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The literal relative path does not exist on disk; resolution goes by
	// the basename across the whole corpus.
	def, err := idx.Resolve("../../../wrong/path/common.json#/definitions/ErrorDetail", from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.Name != "ErrorDetail" {
		t.Fatalf("resolved %+v", def)
	}
}

func TestResolve_CrossDirectoryPrefersStable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	from := writeSpec(t, dir, "svc/a.json", `{"definitions": {}}`)
	writeSpec(t, dir, "one/preview/2024-09-01-preview/common.json", `{"definitions": {"Thing": {"type": "object"}}}`)
	stable := writeSpec(t, dir, "two/stable/2022-03-01/common.json", `{"definitions": {"Thing": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def, err := idx.Resolve("../common.json#/definitions/Thing", from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if def.SourceFile != stable {
		t.Fatalf("resolved from %q, want stable %q", def.SourceFile, stable)
	}
}

func TestResolve_Malformed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeSpec(t, dir, "a.json", `{"definitions": {"Widget": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, ref := range []string{
		"definitions/Widget",
		"#/parameters/Widget",
		"b.yaml#/definitions/Widget",
		"#/definitions/",
		"./b.json#/definitions/Nested/Deep",
	} {
		_, rerr := idx.Resolve(ref, path)
		if CodeOf(rerr) != MalformedReference {
			t.Fatalf("ref %q: expected MalformedReference, got %v", ref, rerr)
		}
		if !IsFatal(rerr) {
			t.Fatalf("MalformedReference must be fatal")
		}
	}
}

func TestResolve_StableAcrossRuns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	from := writeSpec(t, dir, "svc/a.json", `{"definitions": {"Widget": {"type": "object"}}}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, err := idx.Resolve("#/definitions/Widget", from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := idx.Resolve("#/definitions/Widget", from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first != second {
		t.Fatalf("same ref resolved to different definitions")
	}
}
