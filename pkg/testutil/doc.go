// Package testutil provides helpers for tests that inspect generated trees.
//
// Trees are described as flat maps from slash-separated relative path to
// file content. A key ending in "/" denotes an empty directory.
package testutil
