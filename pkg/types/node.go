package types

// NodeKind tags the two kinds of template tree nodes.
type NodeKind int

const (
	NodeDirectory NodeKind = iota + 1
	NodeFile
)

// String returns the string representation of the node kind
func (k NodeKind) String() string {
	switch k {
	case NodeDirectory:
		return "directory"
	case NodeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a template tree node: either a *Directory or a *File. The set is
// closed; other packages cannot add node kinds.
//
// Names and file contents are templated strings that may contain
// <%= identifier %> placeholders. Nodes never resolve them; that happens
// when the tree is materialized against a Context.
type Node interface {
	// Kind reports which variant the node is.
	Kind() NodeKind
	// RawName returns the unresolved name of the node.
	RawName() string

	isNode()
}

// Directory is a node with ordered children
type Directory struct {
	name     string
	children []Node
}

// NewDirectory returns a directory node. Children keep the given order,
// which is the order they are created in.
func NewDirectory(name string, children ...Node) *Directory {
	cp := make([]Node, len(children))
	copy(cp, children)
	return &Directory{name: name, children: cp}
}

func (d *Directory) Kind() NodeKind  { return NodeDirectory }
func (d *Directory) RawName() string { return d.name }
func (d *Directory) isNode()         {}

// Children returns the directory's children in declared order
func (d *Directory) Children() []Node {
	cp := make([]Node, len(d.children))
	copy(cp, d.children)
	return cp
}

// Len returns the number of children
func (d *Directory) Len() int {
	return len(d.children)
}

// File is a leaf node holding raw template content. Empty content is a
// valid, empty file.
type File struct {
	name    string
	content string
}

// NewFile returns a file node
func NewFile(name, content string) *File {
	return &File{name: name, content: content}
}

func (f *File) Kind() NodeKind  { return NodeFile }
func (f *File) RawName() string { return f.name }
func (f *File) isNode()         {}

// RawContent returns the unresolved content of the file
func (f *File) RawContent() string {
	return f.content
}
