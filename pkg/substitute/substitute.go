package substitute

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
)

const (
	// OpenDelim starts a placeholder
	OpenDelim = "<%="
	// CloseDelim ends a placeholder
	CloseDelim = "%>"

	// DefaultSeparator joins sequence items when expansion is requested
	DefaultSeparator = ","
)

// Position locates a byte offset in a template. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String returns line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Placeholder is one <%= identifier %> occurrence
type Placeholder struct {
	Identifier string
	// Raw is the placeholder text including delimiters.
	Raw string
	Pos Position
}

// Options controls call-site specific behavior
type Options struct {
	// ExpandSequences allows sequence values to be interpolated.
	ExpandSequences bool
	// Separator joins sequence items. Empty means DefaultSeparator.
	Separator string
}

// Resolve substitutes every placeholder in template with its value from
// vars. Sequence values are an error.
func Resolve(template string, vars types.Context) (string, error) {
	return ResolveWith(template, vars, Options{})
}

// ResolveWith is Resolve with explicit options
func ResolveWith(template string, vars types.Context, opts Options) (string, error) {
	if !strings.Contains(template, OpenDelim) {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))

	err := scan(template,
		func(literal string) { b.WriteString(literal) },
		func(p Placeholder) error {
			v, ok := vars.Lookup(p.Identifier)
			if !ok {
				return errors.Newf(errors.ErrUnresolvedVariable,
					"unresolved variable %q at %s", p.Identifier, p.Pos).
					WithDetail("identifier", p.Identifier).
					WithDetail("location", p.Pos)
			}
			s, err := render(v, p, opts)
			if err != nil {
				return err
			}
			b.WriteString(s)
			return nil
		})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Placeholders returns every placeholder in template in order of appearance
func Placeholders(template string) ([]Placeholder, error) {
	var out []Placeholder
	err := scan(template, func(string) {}, func(p Placeholder) error {
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsLiteral reports whether template contains no placeholders
func IsLiteral(template string) bool {
	return !strings.Contains(template, OpenDelim)
}

func render(v types.Value, p Placeholder, opts Options) (string, error) {
	if s, ok := v.Scalar(); ok {
		return s, nil
	}
	if !opts.ExpandSequences {
		return "", errors.Newf(errors.ErrSequenceValue,
			"variable %q at %s is a sequence and cannot be interpolated inline", p.Identifier, p.Pos).
			WithDetail("identifier", p.Identifier).
			WithDetail("location", p.Pos)
	}
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return v.Join(sep), nil
}

// scan walks s left to right, handing literal runs to lit and placeholders
// to ph. It stops at the first error returned by ph.
func scan(s string, lit func(string), ph func(Placeholder) error) error {
	offset := 0
	for {
		i := strings.Index(s[offset:], OpenDelim)
		if i < 0 {
			lit(s[offset:])
			return nil
		}
		start := offset + i
		lit(s[offset:start])

		bodyStart := start + len(OpenDelim)
		j := strings.Index(s[bodyStart:], CloseDelim)
		if j < 0 {
			return malformed(s, start, "opening delimiter has no matching closing delimiter")
		}
		end := bodyStart + j + len(CloseDelim)

		ident := strings.TrimSpace(s[bodyStart : bodyStart+j])
		if ident == "" {
			return malformed(s, start, "placeholder has no identifier")
		}

		if err := ph(Placeholder{Identifier: ident, Raw: s[start:end], Pos: positionOf(s, start)}); err != nil {
			return err
		}
		offset = end
	}
}

func malformed(s string, offset int, reason string) error {
	pos := positionOf(s, offset)
	return errors.Newf(errors.ErrMalformedPlaceholder, "malformed placeholder at %s: %s", pos, reason).
		WithDetail("position", pos)
}

func positionOf(s string, offset int) Position {
	before := s[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}
