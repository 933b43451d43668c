package templates

import (
	"path"
	"path/filepath"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type dirLoader struct {
	fs       afero.Fs
	root     string
	excludes []string
	logger   zerolog.Logger
}

// LoadDirectory reads a template tree from dir. Entries are visited in name
// order; paths matching an exclude pattern are skipped along with their
// contents.
func LoadDirectory(fsys afero.Fs, dir string, opts LoadOptions) (*Template, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template directory %s not found", dir).
			WithDetail("ref", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidTemplate, "%s is not a directory", dir).WithDetail("ref", dir)
	}

	excludes := opts.Exclude
	if excludes == nil {
		excludes = DefaultExcludes
	}
	for _, p := range excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid exclude pattern %q", p).
				WithDetail("pattern", p)
		}
	}

	h, err := readMeta(fsys, dir)
	if err != nil {
		return nil, err
	}
	name := h.Name
	if name == "" {
		name = filepath.Base(filepath.Clean(dir))
	}

	l := &dirLoader{fs: fsys, root: dir, excludes: excludes, logger: logging.GetLogger("templates")}
	children, err := l.children("")
	if err != nil {
		return nil, err
	}
	root := types.NewDirectory(name, children...)

	schema, err := h.schema(dir)
	if err != nil {
		return nil, err
	}

	return &Template{
		Ref:          dir,
		Name:         name,
		Description:  h.Description,
		Root:         root,
		Schema:       schema,
		Substitution: h.options(),
	}, nil
}

func readMeta(fsys afero.Fs, dir string) (header, error) {
	var h header
	metaPath := filepath.Join(dir, MetaFile)
	exists, err := afero.Exists(fsys, metaPath)
	if err != nil {
		return h, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", metaPath).WithDetail("ref", metaPath)
	}
	if !exists {
		return h, nil
	}
	data, err := afero.ReadFile(fsys, metaPath)
	if err != nil {
		return h, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", metaPath).WithDetail("ref", metaPath)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: invalid YAML", metaPath).
			WithDetail("ref", metaPath)
	}
	return h, nil
}

// children loads the entries of the directory at rel, a slash-separated
// path relative to the template root
func (l *dirLoader) children(rel string) ([]types.Node, error) {
	full := filepath.Join(l.root, filepath.FromSlash(rel))
	entries, err := afero.ReadDir(l.fs, full)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", full).
			WithDetail("ref", full)
	}

	nodes := make([]types.Node, 0, len(entries))
	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		if rel == "" && entry.Name() == MetaFile {
			continue
		}
		if l.excluded(childRel) {
			l.logger.Trace().Str("path", childRel).Msg("Excluded")
			continue
		}

		switch {
		case entry.IsDir():
			kids, err := l.children(childRel)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, types.NewDirectory(entry.Name(), kids...))
		case entry.Mode().IsRegular():
			p := filepath.Join(full, entry.Name())
			data, err := afero.ReadFile(l.fs, p)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", p).WithDetail("ref", p)
			}
			if _, err := substitute.Placeholders(string(data)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "%s: bad placeholder", childRel).
					WithDetail("ref", p)
			}
			nodes = append(nodes, types.NewFile(entry.Name(), string(data)))
		default:
			l.logger.Warn().Str("path", childRel).Str("mode", entry.Mode().String()).
				Msg("Skipping entry that is neither a file nor a directory")
		}
	}
	return nodes, nil
}

func (l *dirLoader) excluded(rel string) bool {
	for _, p := range l.excludes {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
