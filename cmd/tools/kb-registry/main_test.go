// cmd/tools/kb-registry/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"candidate-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exported(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.json")
	_, err := run(t, "export", "--path", path)
	require.NoError(t, err)
	return path
}

func TestExportAndValidate(t *testing.T) {
	path := exported(t)

	out, err := run(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, registry.DefaultVersion)

	_, err = run(t, "export", "--path", path)
	assert.Error(t, err, "refuses to overwrite without --force")

	_, err = run(t, "export", "--path", path, "--force")
	assert.NoError(t, err)
}

func TestAddVariant(t *testing.T) {
	path := exported(t)

	out, err := run(t, "add-variant", "--path", path, "--field", "major", "--canonical", "computer science", "--variant", "Compsci Hons")
	require.NoError(t, err)
	assert.Contains(t, out, "Compsci Hons")

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	entry, ok := reg.Lookup(registry.FieldMajor, "compsci hons")
	require.True(t, ok)
	assert.Equal(t, "Computer Science", entry.Canonical)
	assert.Equal(t, bumpVersion(registry.DefaultVersion), reg.Version())
}

func TestAddVariant_Errors(t *testing.T) {
	path := exported(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown canonical", []string{"--field", "major", "--canonical", "Alchemy", "--variant", "Alch"}},
		{"unknown field", []string{"--field", "hobby", "--canonical", "Chess", "--variant", "chess"}},
		{"collides with another entry", []string{"--field", "major", "--canonical", "Finance", "--variant", "BBA"}},
		{"missing flag", []string{"--field", "major", "--canonical", "Finance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"add-variant", "--path", path}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultVersion, reg.Version(), "failed edits leave the file untouched")
}

func TestStats(t *testing.T) {
	path := exported(t)

	out, err := run(t, "stats", "--path", path, "--json")
	require.NoError(t, err)

	var stats kbStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, registry.DefaultVersion, stats.Version)
	require.Len(t, stats.Fields, 4)

	reg := registry.Default()
	for _, f := range stats.Fields {
		assert.Equal(t, reg.Count(f.Field), f.Entries, f.Field)
	}
}

func TestBumpVersion(t *testing.T) {
	assert.Equal(t, "2026.10.2", bumpVersion("2026.10.1"))
	assert.Equal(t, "1.10", bumpVersion("1.9"))
	assert.Equal(t, "beta.1", bumpVersion("beta"))
	assert.Equal(t, "8", bumpVersion("7"))
}
