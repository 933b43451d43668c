package variables

import (
	"math"
	"strconv"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// Kind is the declared type of a variable
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
)

// ParseKind parses a kind name. The empty string is KindString.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "str":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "bool", "boolean":
		return KindBool, nil
	case "list", "sequence", "array":
		return KindList, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown variable kind %q", s).
			WithDetail("kind", s)
	}
}

// Coerce converts v to a Value of the given kind. Strings are parsed for int
// and bool kinds and split on commas for lists.
func Coerce(kind Kind, v any) (types.Value, error) {
	if tv, ok := v.(types.Value); ok {
		v = tv.Interface()
	}
	switch kind {
	case KindString, "":
		s, ok := scalarString(v)
		if !ok {
			return types.Value{}, coerceError(kind, v)
		}
		return types.StringValue(s), nil

	case KindInt:
		if n, ok := integer(v); ok {
			return types.IntValue(n), nil
		}
		if s, ok := v.(string); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err == nil {
				return types.IntValue(n), nil
			}
		}
		return types.Value{}, coerceError(kind, v)

	case KindBool:
		switch b := v.(type) {
		case bool:
			return types.BoolValue(b), nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err == nil {
				return types.BoolValue(parsed), nil
			}
		}
		return types.Value{}, coerceError(kind, v)

	case KindList:
		items, ok := listItems(v)
		if !ok {
			return types.Value{}, coerceError(kind, v)
		}
		return types.ListValue(items...), nil
	}
	return types.Value{}, errors.Newf(errors.ErrInvalidInput, "unknown variable kind %q", kind)
}

// Infer converts v to a Value using its Go type
func Infer(v any) (types.Value, error) {
	switch x := v.(type) {
	case types.Value:
		return x, nil
	case string:
		return types.StringValue(x), nil
	case bool:
		return types.BoolValue(x), nil
	case []string, []any:
		return Coerce(KindList, x)
	}
	if n, ok := integer(v); ok {
		return types.IntValue(n), nil
	}
	return types.Value{}, errors.Newf(errors.ErrInvalidVariable, "unsupported value %v (%T)", v, v)
}

func coerceError(kind Kind, v any) error {
	return errors.Newf(errors.ErrInvalidVariable, "cannot use %v (%T) as %s", v, v, kind).
		WithDetail("kind", string(kind))
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatInt(float64(n))
	case float64:
		return floatInt(n)
	}
	return 0, false
}

func floatInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	}
	if n, ok := integer(v); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

func listItems(v any) ([]string, bool) {
	switch x := v.(type) {
	case string:
		return splitList(x), true
	case []string:
		return append([]string(nil), x...), true
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := scalarString(item)
			if !ok {
				return nil, false
			}
			items = append(items, s)
		}
		return items, true
	}
	return nil, false
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
