package tree

import (
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// PathEntry is a file at a slash-separated path relative to the tree root
type PathEntry struct {
	Path    string
	Content string
}

// Builder assembles a tree from path segments. Directories are created on
// demand and keep the order in which their children were first added.
type Builder struct {
	root *dirBuilder
}

type dirBuilder struct {
	name  string
	order []string
	dirs  map[string]*dirBuilder
	files map[string]string
}

func newDirBuilder(name string) *dirBuilder {
	return &dirBuilder{
		name:  name,
		dirs:  make(map[string]*dirBuilder),
		files: make(map[string]string),
	}
}

// NewBuilder returns a builder for a tree whose root directory is rootName
func NewBuilder(rootName string) *Builder {
	return &Builder{root: newDirBuilder(rootName)}
}

// AddDir ensures the directory at segments exists
func (b *Builder) AddDir(segments ...string) error {
	_, err := b.dir(segments)
	return err
}

// AddFile adds a file at segments. The last segment is the file name.
func (b *Builder) AddFile(content string, segments ...string) error {
	if len(segments) == 0 {
		return errors.New(errors.ErrInvalidTemplate, "file entry has no name")
	}
	parent, err := b.dir(segments[:len(segments)-1])
	if err != nil {
		return err
	}
	name := segments[len(segments)-1]
	if err := checkSegment(name, segments); err != nil {
		return err
	}
	if _, isDir := parent.dirs[name]; isDir {
		return shapeConflict(segments, "is already a directory")
	}
	if _, isFile := parent.files[name]; isFile {
		return shapeConflict(segments, "is declared twice")
	}
	parent.files[name] = content
	parent.order = append(parent.order, name)
	return nil
}

// Build returns the assembled root directory
func (b *Builder) Build() *types.Directory {
	return b.root.build()
}

func (b *Builder) dir(segments []string) (*dirBuilder, error) {
	cur := b.root
	for i, seg := range segments {
		if err := checkSegment(seg, segments); err != nil {
			return nil, err
		}
		if _, isFile := cur.files[seg]; isFile {
			return nil, shapeConflict(segments[:i+1], "is already a file")
		}
		next, ok := cur.dirs[seg]
		if !ok {
			next = newDirBuilder(seg)
			cur.dirs[seg] = next
			cur.order = append(cur.order, seg)
		}
		cur = next
	}
	return cur, nil
}

func (d *dirBuilder) build() *types.Directory {
	children := make([]types.Node, 0, len(d.order))
	for _, name := range d.order {
		if sub, ok := d.dirs[name]; ok {
			children = append(children, sub.build())
			continue
		}
		children = append(children, types.NewFile(name, d.files[name]))
	}
	return types.NewDirectory(d.name, children...)
}

func checkSegment(seg string, segments []string) error {
	if seg == "" || seg == "." || seg == ".." {
		return errors.Newf(errors.ErrInvalidTemplate, "invalid path segment %q in %q",
			seg, strings.Join(segments, "/")).WithDetail("path", strings.Join(segments, "/"))
	}
	return nil
}

func shapeConflict(segments []string, what string) error {
	p := strings.Join(segments, "/")
	return errors.Newf(errors.ErrInvalidTemplate, "template entry %q %s", p, what).
		WithDetail("path", p)
}

// SplitPath splits a slash-separated template path into segments. Leading
// and trailing slashes are ignored; inner empty or dot segments are kept so
// the builder can reject them.
func SplitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// FromPaths builds a tree from a flat, ordered list of file paths. Shared
// directory prefixes are merged in first-seen order, so
//
//	app/core/config.py
//	app/main.py
//	Dockerfile
//
// yields rootName/{app/{core/{config.py}, main.py}, Dockerfile}.
func FromPaths(rootName string, entries []PathEntry) (*types.Directory, error) {
	b := NewBuilder(rootName)
	for _, e := range entries {
		if err := b.AddFile(e.Content, SplitPath(e.Path)...); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
