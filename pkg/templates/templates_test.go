package templates

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/filesystem"
	"github.com/arthur-debert/svcgen/pkg/materialize"
	"github.com/arthur-debert/svcgen/pkg/testutil"
	"github.com/arthur-debert/svcgen/pkg/tree"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, tmpl *Template, provided map[string]any) map[string]string {
	t.Helper()
	vars, err := tmpl.Schema.Build(provided)
	require.NoError(t, err)

	mem := afero.NewMemMapFs()
	opts := materialize.Options{Overwrite: true, Substitution: tmpl.Substitution}
	report := materialize.Materialize(context.Background(), filesystem.New(mem), tmpl.Root, vars, "/out", opts)
	require.NoError(t, report.Err)
	return testutil.ReadTree(t, mem, "/out")
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"fastapi", "skeleton"}, Builtins())

	_, err := Builtin("rails")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestBuiltinFastAPI(t *testing.T) {
	tmpl, err := Builtin("fastapi")
	require.NoError(t, err)
	assert.Equal(t, "builtin:fastapi", tmpl.Ref)
	assert.Equal(t, "<%= name %>-service", tmpl.Name)

	undeclared, err := tmpl.Undeclared()
	require.NoError(t, err)
	assert.Empty(t, undeclared)

	files := generate(t, tmpl, map[string]any{
		"name":        "user-profile",
		"port":        9000,
		"corsOrigins": "http://a,http://b",
	})

	want := []string{
		"user-profile-service/app/__init__.py",
		"user-profile-service/app/main.py",
		"user-profile-service/app/api/__init__.py",
		"user-profile-service/app/api/routes/__init__.py",
		"user-profile-service/app/api/routes/router.py",
		"user-profile-service/app/core/__init__.py",
		"user-profile-service/app/core/config.py",
		"user-profile-service/app/core/security.py",
		"user-profile-service/app/services/__init__.py",
		"user-profile-service/app/services/user_profile_service.py",
		"user-profile-service/app/repositories/__init__.py",
		"user-profile-service/app/repositories/user_profile_repository.py",
		"user-profile-service/app/schemas/__init__.py",
		"user-profile-service/app/schemas/user_profile.py",
		"user-profile-service/tests/__init__.py",
		"user-profile-service/tests/conftest.py",
		"user-profile-service/tests/test_user_profile.py",
		"user-profile-service/Dockerfile",
		"user-profile-service/.env",
		"user-profile-service/.env.example",
		"user-profile-service/.gitignore",
		"user-profile-service/pyproject.toml",
		"user-profile-service/poetry.lock",
		"user-profile-service/README.md",
	}
	for _, p := range want {
		assert.Contains(t, files, p)
	}
	assert.Len(t, files, len(want))

	config := files["user-profile-service/app/core/config.py"]
	assert.Contains(t, config, `APP_NAME: str = "user-profile"`)
	assert.Contains(t, config, "PORT: int = 9000")
	assert.Contains(t, config, `POSTGRES_DB: str = "user_profile"`)
	assert.Contains(t, config, `ORGANIZATION_PREFIX: str = "my-org"`)

	assert.Contains(t, files["user-profile-service/app/services/user_profile_service.py"], "class UserProfileService:")
	assert.Contains(t, files["user-profile-service/.env"], `CORS_ORIGINS=["http://a","http://b"]`)
	assert.Contains(t, files["user-profile-service/Dockerfile"], `"--port", "9000"`)
	assert.Empty(t, files["user-profile-service/poetry.lock"])

	for p, content := range files {
		assert.NotContains(t, content, "<%=", p)
	}
}

func TestBuiltinSkeleton(t *testing.T) {
	tmpl, err := Builtin("skeleton")
	require.NoError(t, err)

	files := generate(t, tmpl, nil)
	assert.Contains(t, files, "auth-service/app/services/auth_service.py")
	assert.Contains(t, files, "auth-service/requirements.txt")
	for p, content := range files {
		assert.Empty(t, content, p)
	}
}

func TestParseManifest(t *testing.T) {
	data := []byte(`
name: "<%= name %>"
description: demo
variables:
  - name: name
    default: demo
tree:
  src/pkg/main.go: |
    package <%= name %>
  src:
    README.md: hi
  empty.txt:
  docs: {}
`)
	tmpl, err := ParseManifest(data, "demo.yaml")
	require.NoError(t, err)
	assert.Equal(t, "demo", tmpl.Description)
	assert.Equal(t, 1, tmpl.Schema.Len())

	var paths []string
	require.NoError(t, tree.Walk(tmpl.Root, func(segments []string, n types.Node) error {
		paths = append(paths, strings.Join(segments, "/"))
		return nil
	}))
	assert.Equal(t, []string{
		"<%= name %>",
		"<%= name %>/src",
		"<%= name %>/src/pkg",
		"<%= name %>/src/pkg/main.go",
		"<%= name %>/src/README.md",
		"<%= name %>/empty.txt",
		"<%= name %>/docs",
	}, paths)
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		line int
	}{
		{"not yaml", "name: [unclosed", 0},
		{"empty", "", 0},
		{"sequence document", "- a\n- b\n", 1},
		{"no name", "tree:\n  a: b\n", 1},
		{"no tree", "name: x\n", 1},
		{"tree is a list", "name: x\ntree:\n  - a\n", 3},
		{"number as file", "name: x\ntree:\n  port: 8000\n", 3},
		{"bool as file", "name: x\ntree:\n  a:\n    flag: true\n", 4},
		{"sequence as node", "name: x\ntree:\n  dir:\n    - a\n", 4},
		{"file and directory", "name: x\ntree:\n  a: text\n  a/b: text\n", 4},
		{"dot segment", "name: x\ntree:\n  a/../b: text\n", 3},
		{"malformed placeholder", "name: x\ntree:\n  a: \"<%= oops\"\n", 0},
		{"bad variable", "name: x\nvariables:\n  - name: bad-name\ntree:\n  a: b\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml), "bad.yaml")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate), "got %v", err)
			if tt.line > 0 {
				assert.Equal(t, tt.line, errors.GetErrorDetails(err)["line"])
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/tpl", map[string]string{
		"svcgen.yaml":     "name: \"<%= name %>-svc\"\nvariables:\n  - name: name\n    required: true\n",
		"<%= name %>.py":  "NAME = '<%= name %>'",
		"pkg/__init__.py": "",
		"pkg/.DS_Store":   "junk",
		".git/HEAD":       "ref: refs/heads/main",
		"build/out.bin":   "x",
		"docs/guide.md":   "# <%= name %>",
	})

	tmpl, err := LoadDirectory(mem, "/tpl", LoadOptions{Exclude: append([]string{"build"}, DefaultExcludes...)})
	require.NoError(t, err)
	assert.Equal(t, "<%= name %>-svc", tmpl.Name)
	assert.Equal(t, []string{"name"}, tmpl.Schema.Missing(nil))

	files := generate(t, tmpl, map[string]any{"name": "auth"})
	assert.Equal(t, map[string]string{
		"auth-svc/auth.py":         "NAME = 'auth'",
		"auth-svc/docs/guide.md":   "# auth",
		"auth-svc/pkg/__init__.py": "",
	}, files)
}

func TestLoadDirectoryDefaults(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/templates/api", map[string]string{
		"main.go":     "package main",
		".git/HEAD":   "x",
		"a/.DS_Store": "x",
	})

	tmpl, err := LoadDirectory(mem, "/templates/api", LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "api", tmpl.Name)
	assert.Zero(t, tmpl.Schema.Len())

	dirs, files := tree.Count(tmpl.Root)
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 1, files)
}

func TestLoadDirectoryErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/tpl", map[string]string{"a.txt": "<%= broken"})

	_, err := LoadDirectory(mem, "/tpl", LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate))

	_, err = LoadDirectory(mem, "/missing", LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))

	_, err = LoadDirectory(mem, "/tpl/a.txt", LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate))

	_, err = LoadDirectory(mem, "/tpl", LoadOptions{Exclude: []string{"[unclosed"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// metaStatFs fails every Stat of a template metadata file
type metaStatFs struct {
	afero.Fs
}

func (m metaStatFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Base(name) == MetaFile {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
	}
	return m.Fs.Stat(name)
}

func TestLoadDirectoryMetaStatFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/tpl", map[string]string{
		MetaFile: "name: svc\n",
		"a.txt":  "a",
	})

	_, err := LoadDirectory(metaStatFs{Fs: mem}, "/tpl", LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	assert.Equal(t, filepath.Join("/tpl", MetaFile), errors.GetErrorDetails(err)["ref"])
}

func TestOpen(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/work", map[string]string{
		"tpl.yaml":      "name: svc\ntree:\n  a.txt: a\n",
		"notes.txt":     "x",
		"dir/readme.md": "hello",
	})

	tests := []struct {
		ref      string
		wantName string
		wantCode errors.ErrorCode
	}{
		{"", "<%= name %>-service", ""},
		{"builtin:skeleton", "<%= name %>-service", ""},
		{"/work/tpl.yaml", "svc", ""},
		{"/work/dir", "dir", ""},
		{"/work/notes.txt", "", errors.ErrInvalidTemplate},
		{"/work/missing.yaml", "", errors.ErrTemplateNotFound},
		{"builtin:nope", "", errors.ErrTemplateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			tmpl, err := Open(mem, tt.ref, LoadOptions{})
			if tt.wantCode != "" {
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tmpl.Name)
		})
	}
}
