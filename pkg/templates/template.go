package templates

import (
	"sort"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/tree"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/arthur-debert/svcgen/pkg/variables"
	"github.com/spf13/afero"
)

const (
	// BuiltinPrefix marks a reference to an embedded template
	BuiltinPrefix = "builtin:"
	// DefaultRef is used when no template is given
	DefaultRef = BuiltinPrefix + "fastapi"
	// MetaFile is the header file read from directory templates
	MetaFile = "svcgen.yaml"
)

// DefaultExcludes are skipped when loading a directory template
var DefaultExcludes = []string{"**/.git", "**/.DS_Store"}

// Template is a loaded template tree with its variable schema
type Template struct {
	Ref         string
	Name        string
	Description string
	Root        types.Node
	Schema      *variables.Schema
	// Substitution is used for every name and content in the tree
	Substitution substitute.Options
}

// LoadOptions configures directory loading
type LoadOptions struct {
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the template directory. Nil means DefaultExcludes.
	Exclude []string
}

// Identifiers returns every identifier the tree references
func (t *Template) Identifiers() ([]string, error) {
	return tree.Identifiers(t.Root)
}

// Undeclared returns referenced identifiers that the schema does not declare
func (t *Template) Undeclared() ([]string, error) {
	ids, err := t.Identifiers()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, id := range ids {
		if _, ok := t.Schema.Field(id); !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// Open loads the template named by ref. Paths are resolved on fsys.
func Open(fsys afero.Fs, ref string, opts LoadOptions) (*Template, error) {
	logger := logging.GetLogger("templates")

	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultRef
	}
	if strings.HasPrefix(ref, BuiltinPrefix) {
		return Builtin(strings.TrimPrefix(ref, BuiltinPrefix))
	}

	info, err := fsys.Stat(ref)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s not found", ref).
			WithDetail("ref", ref)
	}

	var t *Template
	switch {
	case info.IsDir():
		t, err = LoadDirectory(fsys, ref, opts)
	case isManifestPath(ref):
		t, err = LoadManifest(fsys, ref)
	default:
		return nil, errors.Newf(errors.ErrInvalidTemplate,
			"%s is neither a directory nor a .yaml manifest", ref).WithDetail("ref", ref)
	}
	if err != nil {
		return nil, err
	}

	dirs, files := tree.Count(t.Root)
	logger.Debug().
		Str("ref", ref).
		Str("name", t.Name).
		Int("dirs", dirs).
		Int("files", files).
		Int("variables", t.Schema.Len()).
		Msg("Template loaded")
	return t, nil
}

func isManifestPath(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
