// Package prompt asks the user for template variables on a terminal.
package prompt

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/variables"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompter collects values for fields. The returned map holds provided plus
// the answers; provided is not modified.
type Prompter interface {
	Ask(ctx context.Context, fields []variables.Field, provided map[string]any) (map[string]any, error)
}

// FormPrompter asks with a huh form
type FormPrompter struct {
	// Accessible renders plain line-based prompts
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

// Interactive reports whether both files are terminals
func Interactive(in, out *os.File) bool {
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask runs the form. Aborting it returns a CANCELLED error.
func (p FormPrompter) Ask(ctx context.Context, fields []variables.Field, provided map[string]any) (map[string]any, error) {
	if len(fields) == 0 {
		return copyMap(provided), nil
	}

	form, ans := buildForm(fields)
	form = form.WithAccessible(p.Accessible)
	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) || stderrors.Is(err, context.Canceled) {
			return nil, errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
		}
		return nil, errors.Wrap(err, errors.ErrInternal, "prompt failed")
	}
	return ans.apply(provided), nil
}

// answers holds the form's bound values, one slot per field
type answers struct {
	fields []variables.Field
	text   []string
	flags  []bool
}

func buildForm(fields []variables.Field) (*huh.Form, *answers) {
	ans := &answers{
		fields: fields,
		text:   make([]string, len(fields)),
		flags:  make([]bool, len(fields)),
	}

	inputs := make([]huh.Field, 0, len(fields))
	for i, f := range fields {
		def := f.DefaultText()
		if f.Kind == variables.KindBool {
			ans.flags[i], _ = strconv.ParseBool(def)
			inputs = append(inputs, huh.NewConfirm().
				Title(f.Label()).
				Description(f.Description).
				Value(&ans.flags[i]))
			continue
		}

		input := huh.NewInput().
			Title(f.Label()).
			Description(describe(f)).
			Validate(validatorFor(f))
		if substitute.IsLiteral(def) {
			ans.text[i] = def
		} else {
			input = input.Placeholder(def)
		}
		inputs = append(inputs, input.Value(&ans.text[i]))
	}

	return huh.NewForm(huh.NewGroup(inputs...)), ans
}

func describe(f variables.Field) string {
	parts := make([]string, 0, 2)
	if f.Description != "" && f.Description != f.Label() {
		parts = append(parts, f.Description)
	}
	switch f.Kind {
	case variables.KindInt:
		parts = append(parts, "a whole number")
	case variables.KindList:
		parts = append(parts, "comma separated")
	}
	return strings.Join(parts, ", ")
}

// validatorFor checks a typed answer against the field
func validatorFor(f variables.Field) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if f.Required {
				return fmt.Errorf("%s is required", f.Name)
			}
			return nil
		}
		if _, err := variables.Coerce(f.Kind, s); err != nil {
			return fmt.Errorf("%s must be %s", f.Name, article(f.Kind))
		}
		return nil
	}
}

func article(k variables.Kind) string {
	switch k {
	case variables.KindInt:
		return "an integer"
	case variables.KindList:
		return "a list"
	case variables.KindBool:
		return "true or false"
	default:
		return "text"
	}
}

// apply merges the answers over provided. Empty optional answers are left
// out so schema defaults still apply.
func (a *answers) apply(provided map[string]any) map[string]any {
	out := copyMap(provided)
	for i, f := range a.fields {
		if f.Kind == variables.KindBool {
			out[f.Name] = a.flags[i]
			continue
		}
		v := strings.TrimSpace(a.text[i])
		if v == "" {
			continue
		}
		out[f.Name] = v
	}
	return out
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
