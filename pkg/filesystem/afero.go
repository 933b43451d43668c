package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644

	tempPattern = ".svcgen-*.tmp"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// New wraps an afero filesystem
func New(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewOS returns a filesystem backed by the operating system
func NewOS() types.FS {
	return New(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return New(afero.NewMemMapFs())
}

// Afero returns the afero.Fs under a types.FS created by this package, or
// nil for other implementations.
func Afero(f types.FS) afero.Fs {
	if a, ok := f.(*aferoFS); ok {
		return a.fs
	}
	return nil
}

func (a *aferoFS) Exists(path string) (types.PathKind, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return types.PathNone, nil
		}
		return types.PathNone, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return types.PathDirectory, nil
	}
	return types.PathFile, nil
}

func (a *aferoFS) CreateDirectory(path string, existOK bool) error {
	kind, err := a.Exists(path)
	if err != nil {
		return err
	}
	switch kind {
	case types.PathDirectory:
		if existOK {
			return nil
		}
		return errors.Newf(errors.ErrPathConflict, "directory %s already exists", path).
			WithDetail("path", path)
	case types.PathFile:
		return errors.Newf(errors.ErrPathConflict, "%s exists and is not a directory", path).
			WithDetail("path", path)
	}

	if err := a.fs.MkdirAll(path, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path).
			WithDetail("path", path)
	}
	return nil
}

func (a *aferoFS) WriteFile(path string, content []byte, overwrite bool) error {
	kind, err := a.Exists(path)
	if err != nil {
		return err
	}
	switch kind {
	case types.PathDirectory:
		return errors.Newf(errors.ErrPathConflict, "%s exists and is a directory", path).
			WithDetail("path", path)
	case types.PathFile:
		if !overwrite {
			return errors.Newf(errors.ErrFileAlreadyExists, "file %s already exists", path).
				WithDetail("path", path)
		}
	}

	dir := filepath.Dir(path)
	if err := a.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	return a.writeAtomic(dir, path, content)
}

// writeAtomic writes into a temp file next to path and renames it into place
func (a *aferoFS) writeAtomic(dir, path string, content []byte) error {
	tmp, err := afero.TempFile(a.fs, dir, tempPattern)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temporary file for %s", path).
			WithDetail("path", path)
	}
	tmpPath := tmp.Name()

	fail := func(err error, msg string) error {
		_ = tmp.Close()
		_ = a.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "%s %s", msg, path).WithDetail("path", path)
	}

	if _, err := tmp.Write(content); err != nil {
		return fail(err, "failed to write")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "failed to sync")
	}
	if err := tmp.Close(); err != nil {
		_ = a.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", path).WithDetail("path", path)
	}
	if err := a.fs.Chmod(tmpPath, filePerm); err != nil {
		_ = a.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", path).WithDetail("path", path)
	}
	if err := a.fs.Rename(tmpPath, path); err != nil {
		_ = a.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to rename into %s", path).WithDetail("path", path)
	}
	return nil
}
