// Package tree builds and traverses template trees.
//
// A tree is a rooted structure of types.Directory and types.File nodes whose
// names and contents are templated strings. Building a tree never looks at
// variables; placeholders are only bound when the tree is materialized.
package tree

import (
	"github.com/arthur-debert/svcgen/pkg/types"
)

// Tree is a read-only handle on a template tree
type Tree struct {
	root types.Node
}

// New returns a tree rooted at root
func New(root types.Node) *Tree {
	return &Tree{root: root}
}

// Root returns the root node
func (t *Tree) Root() types.Node {
	return t.root
}

// Dir returns a directory node with the given children in order
func Dir(name string, children ...types.Node) *types.Directory {
	return types.NewDirectory(name, children...)
}

// File returns a file node
func File(name, content string) *types.File {
	return types.NewFile(name, content)
}
