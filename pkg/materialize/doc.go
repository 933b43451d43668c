// Package materialize writes a template tree to a destination directory.
//
// A Run walks the tree depth-first in declared order. Directory and file
// names, and file contents, are resolved against the variable context as each
// node is reached, so a missing variable only fails the node that references
// it. Directories are reused when they already exist; files are written
// atomically and either created or overwritten depending on Options.
//
// Nothing is rolled back. The Report lists every path the run created,
// overwrote or reused, so a failed run can be inspected and retried with a
// new Run against the same destination.
package materialize
