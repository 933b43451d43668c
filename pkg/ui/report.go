package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// Summary is a one-line account of a report
func Summary(r *types.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d created, %d overwritten, %d skipped",
		r.Count(types.EntryCreated), r.Count(types.EntryOverwritten), r.Count(types.EntrySkipped))
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(&b, ", %d %s", n, plural(n, "warning", "warnings"))
	}
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// treeItem is an entry placed in the tree under the first entry
type treeItem struct {
	Level int
	Name  string
	Dir   bool
	Kind  types.EntryKind
}

// treeItems turns the pre-order entries of a report into leveled items.
// Entry paths all descend from the first entry.
func treeItems(r *types.Report) []treeItem {
	if len(r.Entries) == 0 {
		return nil
	}
	root := filepath.Clean(r.Entries[0].Path)
	items := make([]treeItem, 0, len(r.Entries))
	for _, e := range r.Entries {
		item := treeItem{
			Name: filepath.Base(e.Path),
			Dir:  e.Node == types.NodeDirectory,
			Kind: e.Kind,
		}
		if rel, err := filepath.Rel(root, e.Path); err == nil && rel != "." {
			item.Level = strings.Count(filepath.ToSlash(rel), "/") + 1
		}
		if item.Dir {
			item.Name += "/"
		}
		items = append(items, item)
	}
	return items
}

// errorView is the serializable form of a terminal error
type errorView struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

func newErrorView(err error) *errorView {
	if err == nil {
		return nil
	}
	return &errorView{
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
		Path:    errors.GetErrorPath(err),
	}
}
