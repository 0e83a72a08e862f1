package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azswag/clientgen/internal/spec"
)

// buildCorpus writes the given rel-path -> JSON files under a temp dir and
// loads them into an index. Warnings from the load and from generation are
// captured in the returned buffer.
func buildCorpus(t *testing.T, files map[string]string) (*spec.Index, *Generator, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	var warn bytes.Buffer
	idx, err := spec.Load(dir, spec.WithWarnWriter(&warn))
	require.NoError(t, err)
	return idx, New(idx, WithWarnWriter(&warn)), &warn
}

func requireOperation(t *testing.T, idx *spec.Index, id string) *spec.Operation {
	t.Helper()
	op, err := idx.Operation(id)
	require.NoError(t, err)
	return op
}
