// Package filesystem provides the types.FS implementations used by svcgen.
//
// Every implementation sits on an afero.Fs: NewOS for the real disk and
// NewMemory for tests and previews. File writes go through a temporary file
// in the target directory followed by a rename, so a reader never sees a
// partially written file.
package filesystem
