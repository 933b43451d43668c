package types

import (
	"regexp"
	"sort"

	"github.com/arthur-debert/svcgen/pkg/errors"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name is a valid variable name
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Context is the immutable set of named values available for substitution
// during one materialization run. The zero value is an empty Context.
type Context struct {
	values map[string]Value
}

// NewContext builds a Context from values. The map is copied, so later
// changes to it are not observed. Every name must be identifier-like.
func NewContext(values map[string]Value) (Context, error) {
	cp := make(map[string]Value, len(values))
	for name, v := range values {
		if !IsIdentifier(name) {
			return Context{}, errors.Newf(errors.ErrInvalidVariable,
				"invalid variable name %q", name).WithDetail("name", name)
		}
		if v.kind == ValueList {
			v = ListValue(v.list...)
		}
		cp[name] = v
	}
	return Context{values: cp}, nil
}

// MustContext is like NewContext but panics on invalid names. It is meant
// for literal contexts in code and tests.
func MustContext(values map[string]Value) Context {
	ctx, err := NewContext(values)
	if err != nil {
		panic(err)
	}
	return ctx
}

// Lookup returns the value bound to name
func (c Context) Lookup(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether name is bound
func (c Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Len returns the number of bound names
func (c Context) Len() int {
	return len(c.values)
}

// Names returns the bound names in sorted order
func (c Context) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a new Context with name bound to v. The receiver is not
// modified.
func (c Context) With(name string, v Value) (Context, error) {
	values := make(map[string]Value, len(c.values)+1)
	for k, existing := range c.values {
		values[k] = existing
	}
	values[name] = v
	return NewContext(values)
}

// Map returns the context as plain Go values keyed by name
func (c Context) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(c.values))
	for name, v := range c.values {
		out[name] = v.Interface()
	}
	return out
}
