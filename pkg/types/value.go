package types

import (
	"strconv"
	"strings"
)

// ValueKind identifies which of the four value shapes a Value holds.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueBool
	ValueList
)

// String returns the string representation of the value kind
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueInt:
		return "int"
	case ValueBool:
		return "bool"
	case ValueList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a single template variable value: a string, an integer, a
// boolean or an ordered sequence of strings.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flag bool
	list []string
}

// StringValue returns a string Value
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// IntValue returns an integer Value
func IntValue(n int64) Value {
	return Value{kind: ValueInt, num: n}
}

// BoolValue returns a boolean Value
func BoolValue(b bool) Value {
	return Value{kind: ValueBool, flag: b}
}

// ListValue returns a sequence Value. The items are copied.
func ListValue(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: ValueList, list: cp}
}

// Kind returns the value kind
func (v Value) Kind() ValueKind {
	return v.kind
}

// Scalar returns the canonical text of a scalar value: strings verbatim,
// integers in base 10 and booleans as true/false. It returns false for
// sequences, which have no inline form.
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case ValueString:
		return v.str, true
	case ValueInt:
		return strconv.FormatInt(v.num, 10), true
	case ValueBool:
		return strconv.FormatBool(v.flag), true
	default:
		return "", false
	}
}

// Items returns a copy of the items of a sequence value, or nil for scalars.
func (v Value) Items() []string {
	if v.kind != ValueList {
		return nil
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// Join renders a sequence value with sep between items. Scalars render as
// their canonical text.
func (v Value) Join(sep string) string {
	if s, ok := v.Scalar(); ok {
		return s
	}
	return strings.Join(v.list, sep)
}

// Interface returns the value as a plain Go value (string, int64, bool or
// []string).
func (v Value) Interface() interface{} {
	switch v.kind {
	case ValueInt:
		return v.num
	case ValueBool:
		return v.flag
	case ValueList:
		return v.Items()
	default:
		return v.str
	}
}

// String implements fmt.Stringer. Sequences render as [a, b].
func (v Value) String() string {
	if s, ok := v.Scalar(); ok {
		return s
	}
	return "[" + strings.Join(v.list, ", ") + "]"
}

// Equal reports whether two values have the same kind and content
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind != ValueList {
		a, _ := v.Scalar()
		b, _ := other.Scalar()
		return a == b
	}
	if len(v.list) != len(other.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != other.list[i] {
			return false
		}
	}
	return true
}
