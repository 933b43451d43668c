package types

// PathKind describes what, if anything, exists at a filesystem path.
type PathKind int

const (
	// PathNone means nothing exists at the path
	PathNone PathKind = iota
	// PathFile means a non-directory entry exists at the path
	PathFile
	// PathDirectory means a directory exists at the path
	PathDirectory
)

// String returns the string representation of the path kind
func (k PathKind) String() string {
	switch k {
	case PathNone:
		return "none"
	case PathFile:
		return "file"
	case PathDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// FS is the filesystem capability the materializer needs. Implementations
// live in pkg/filesystem.
type FS interface {
	// Exists reports what kind of entry is present at path.
	Exists(path string) (PathKind, error)

	// CreateDirectory creates path and any missing parents. When existOK is
	// false an existing directory is an error. An existing non-directory is
	// always an error.
	CreateDirectory(path string, existOK bool) error

	// WriteFile writes content to path so that readers observe either the
	// previous file or the complete new one. When overwrite is false an
	// existing file is an error.
	WriteFile(path string, content []byte, overwrite bool) error
}
