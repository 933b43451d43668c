package templates

import (
	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/tree"
	"github.com/arthur-debert/svcgen/pkg/variables"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// header holds the manifest fields shared with directory meta files
type header struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Substitution substitutionSpec  `yaml:"substitution"`
	Variables    []variables.Field `yaml:"variables"`
}

type substitutionSpec struct {
	ExpandSequences bool   `yaml:"expand_sequences"`
	Separator       string `yaml:"separator"`
}

type manifest struct {
	header `yaml:",inline"`
	Tree   yaml.Node `yaml:"tree"`
}

func (h header) options() substitute.Options {
	return substitute.Options{
		ExpandSequences: h.Substitution.ExpandSequences,
		Separator:       h.Substitution.Separator,
	}
}

func (h header) schema(ref string) (*variables.Schema, error) {
	s, err := variables.NewSchema(h.Variables...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: invalid variables", ref).
			WithDetail("ref", ref)
	}
	return s, nil
}

// LoadManifest reads and parses a manifest file
func LoadManifest(fsys afero.Fs, path string) (*Template, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path).
			WithDetail("ref", path)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest YAML. ref names the source in errors.
func ParseManifest(data []byte, ref string) (*Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: invalid YAML", ref).
			WithDetail("ref", ref)
	}
	if len(doc.Content) == 0 {
		return nil, errors.Newf(errors.ErrInvalidTemplate, "%s: manifest is empty", ref).
			WithDetail("ref", ref)
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, invalid(ref, top, "manifest must be a mapping")
	}

	var m manifest
	if err := top.Decode(&m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: invalid manifest", ref).
			WithDetail("ref", ref)
	}
	if m.Name == "" {
		return nil, invalid(ref, top, "manifest has no name")
	}
	if m.Tree.Kind != yaml.MappingNode {
		if m.Tree.Kind == 0 {
			return nil, invalid(ref, top, "manifest has no tree")
		}
		return nil, invalid(ref, &m.Tree, "tree must be a mapping")
	}

	b := tree.NewBuilder(m.Name)
	if err := addMapping(b, ref, nil, &m.Tree); err != nil {
		return nil, err
	}
	root := b.Build()

	if _, err := tree.Identifiers(root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: bad placeholder", ref).
			WithDetail("ref", ref)
	}

	schema, err := m.schema(ref)
	if err != nil {
		return nil, err
	}

	return &Template{
		Ref:          ref,
		Name:         m.Name,
		Description:  m.Description,
		Root:         root,
		Schema:       schema,
		Substitution: m.options(),
	}, nil
}

func addMapping(b *tree.Builder, ref string, prefix []string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return invalid(ref, key, "tree keys must be plain names")
		}
		segments := tree.SplitPath(key.Value)
		if len(segments) == 0 {
			return invalid(ref, key, "empty tree key")
		}
		full := append(append([]string(nil), prefix...), segments...)

		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}

		switch value.Kind {
		case yaml.MappingNode:
			if err := b.AddDir(full...); err != nil {
				return atLine(err, key)
			}
			if err := addMapping(b, ref, full, value); err != nil {
				return err
			}
		case yaml.ScalarNode:
			content, err := fileContent(ref, key, value)
			if err != nil {
				return err
			}
			if err := b.AddFile(content, full...); err != nil {
				return atLine(err, key)
			}
		default:
			return invalid(ref, value, "%q must be a mapping (directory) or a string (file)", key.Value)
		}
	}
	return nil
}

func fileContent(ref string, key, value *yaml.Node) (string, error) {
	switch value.Tag {
	case "!!null":
		return "", nil
	case "!!str":
		return value.Value, nil
	default:
		return "", invalid(ref, value, "content of %q must be a string, got %s; quote it", key.Value, value.Tag)
	}
}

func invalid(ref string, node *yaml.Node, format string, args ...interface{}) error {
	e := errors.Newf(errors.ErrInvalidTemplate, format, args...).WithDetail("ref", ref)
	if node != nil && node.Line > 0 {
		e = errors.Newf(errors.ErrInvalidTemplate, "%s:%d: %s", ref, node.Line, e.Message).
			WithDetails(map[string]interface{}{"ref": ref, "line": node.Line})
	}
	return e
}

func atLine(err error, node *yaml.Node) error {
	if node == nil || node.Line == 0 {
		return err
	}
	return errors.Wrapf(err, errors.ErrInvalidTemplate, "line %d", node.Line).WithDetail("line", node.Line)
}
