package testutil

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files below root. Keys ending in "/" become directories.
func WriteTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0644))
	}
}

// ReadTree returns every file below root keyed by slash-separated relative
// path. Directories with no entries appear with a trailing "/".
func ReadTree(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			entries, err := afero.ReadDir(fsys, p)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				out[rel+"/"] = ""
			}
			return nil
		}
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// AssertFileContent checks that the file at p holds exactly want
func AssertFileContent(t *testing.T, fsys afero.Fs, p, want string) {
	t.Helper()
	data, err := afero.ReadFile(fsys, p)
	if assert.NoError(t, err, "reading %s", p) {
		assert.Equal(t, want, string(data), "content of %s", p)
	}
}

// AssertNoPath checks that nothing exists at p
func AssertNoPath(t *testing.T, fsys afero.Fs, p string) {
	t.Helper()
	exists, err := afero.Exists(fsys, p)
	require.NoError(t, err)
	assert.False(t, exists, "%s should not exist", p)
}

// Join joins slash-separated segments below root
func Join(root string, rel ...string) string {
	return filepath.Join(root, filepath.FromSlash(path.Join(rel...)))
}
