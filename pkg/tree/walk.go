package tree

import (
	stderrors "errors"
	"sort"

	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// SkipDir can be returned by a WalkFunc to skip a directory's children
var SkipDir = stderrors.New("skip this directory")

// WalkFunc is called for every node in pre-order. segments holds the raw
// names from the root down to and including n.
type WalkFunc func(segments []string, n types.Node) error

// Walk visits n and its descendants depth-first in declared order
func Walk(n types.Node, fn WalkFunc) error {
	err := walk(nil, n, fn)
	if err == SkipDir {
		return nil
	}
	return err
}

func walk(parent []string, n types.Node, fn WalkFunc) error {
	segments := make([]string, len(parent), len(parent)+1)
	copy(segments, parent)
	segments = append(segments, n.RawName())

	if err := fn(segments, n); err != nil {
		return err
	}
	d, ok := n.(*types.Directory)
	if !ok {
		return nil
	}
	for _, child := range d.Children() {
		if err := walk(segments, child, fn); err != nil {
			if err == SkipDir {
				continue
			}
			return err
		}
	}
	return nil
}

// Identifiers returns the sorted, unique placeholder identifiers referenced
// by any name or file content in the tree. A malformed placeholder anywhere
// is reported.
func Identifiers(n types.Node) ([]string, error) {
	seen := make(map[string]struct{})
	collect := func(s string) error {
		phs, err := substitute.Placeholders(s)
		if err != nil {
			return err
		}
		for _, p := range phs {
			seen[p.Identifier] = struct{}{}
		}
		return nil
	}

	err := Walk(n, func(_ []string, node types.Node) error {
		if err := collect(node.RawName()); err != nil {
			return err
		}
		if f, ok := node.(*types.File); ok {
			return collect(f.RawContent())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// Count returns the number of directories and files under n, including n
func Count(n types.Node) (dirs, files int) {
	_ = Walk(n, func(_ []string, node types.Node) error {
		switch node.Kind() {
		case types.NodeDirectory:
			dirs++
		case types.NodeFile:
			files++
		}
		return nil
	})
	return dirs, files
}
