package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryNode(t *testing.T) {
	main := NewFile("main.py", "PORT=<%= port %>")
	children := []Node{main, NewDirectory("tests")}
	dir := NewDirectory("<%= name %>-service", children...)

	assert.Equal(t, NodeDirectory, dir.Kind())
	assert.Equal(t, "<%= name %>-service", dir.RawName())
	require.Equal(t, 2, dir.Len())

	// the directory keeps its own copy of the children
	children[0] = NewFile("other.py", "")
	got := dir.Children()
	assert.Equal(t, "main.py", got[0].RawName())

	got[1] = nil
	assert.NotNil(t, dir.Children()[1])
}

func TestFileNode(t *testing.T) {
	f := NewFile("__init__.py", "")
	assert.Equal(t, NodeFile, f.Kind())
	assert.Equal(t, "__init__.py", f.RawName())
	assert.Equal(t, "", f.RawContent())
	assert.Equal(t, "file", f.Kind().String())
}

func TestPathKindString(t *testing.T) {
	assert.Equal(t, "none", PathNone.String())
	assert.Equal(t, "file", PathFile.String())
	assert.Equal(t, "directory", PathDirectory.String())
}
