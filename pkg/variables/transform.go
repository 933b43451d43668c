package variables

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform rewrites a derived string value
type Transform string

const (
	TransformNone   Transform = ""
	TransformSnake  Transform = "snake"
	TransformKebab  Transform = "kebab"
	TransformLower  Transform = "lower"
	TransformUpper  Transform = "upper"
	TransformTitle  Transform = "title"
	TransformPascal Transform = "pascal"
)

// ParseTransform parses a transform name
func ParseTransform(s string) (Transform, error) {
	t := Transform(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TransformNone, TransformSnake, TransformKebab, TransformLower, TransformUpper, TransformTitle, TransformPascal:
		return t, nil
	}
	return TransformNone, errors.Newf(errors.ErrInvalidInput, "unknown transform %q", s).
		WithDetail("transform", s)
}

// Apply returns s rewritten by the transform
func (t Transform) Apply(s string) string {
	switch t {
	case TransformSnake:
		return strings.Join(words(s), "_")
	case TransformKebab:
		return strings.Join(words(s), "-")
	case TransformLower:
		return cases.Lower(language.Und).String(s)
	case TransformUpper:
		return cases.Upper(language.Und).String(s)
	case TransformTitle:
		return cases.Title(language.English).String(s)
	case TransformPascal:
		title := cases.Title(language.English)
		parts := words(s)
		for i, w := range parts {
			parts[i] = title.String(w)
		}
		return strings.Join(parts, "")
	default:
		return s
	}
}

// words splits s into lower-cased words on punctuation, spaces and
// lower-to-upper case changes: "userAuth-API v2" -> [user auth api v2].
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
