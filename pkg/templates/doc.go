// Package templates loads template trees from the places svcgen knows about.
//
// A template reference is one of:
//
//	builtin:NAME        a manifest embedded in the binary (fastapi, skeleton)
//	path/to/file.yaml   a manifest on disk
//	path/to/dir         a directory whose entries are the template tree
//
// Manifests describe the tree as nested YAML mappings: a mapping is a
// directory, a string or empty value is a file. Keys may contain slashes to
// create intermediate directories. A directory template may carry a
// svcgen.yaml file with the same header fields as a manifest; that file is
// never part of the generated output.
package templates
