package templates

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtins returns the names of the embedded templates
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return sortedCopy(names)
}

// Builtin loads an embedded template by name
func Builtin(name string) (*Template, error) {
	ref := BuiltinPrefix + name
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "no builtin template %q (have: %s)",
			name, strings.Join(Builtins(), ", ")).WithDetail("ref", ref)
	}
	return ParseManifest(data, ref)
}
