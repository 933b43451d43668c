package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/types"
)

// textRenderer writes plain text
type textRenderer struct {
	out io.Writer
}

func newTextRenderer(out io.Writer) *textRenderer {
	return &textRenderer{out: out}
}

func (r *textRenderer) RenderReport(rep *types.Report) error {
	var b strings.Builder
	for _, e := range rep.Entries {
		fmt.Fprintf(&b, "%-12s%s\n", e.Kind, e.Path)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w.Message)
	}
	fmt.Fprintln(&b, Summary(rep))
	if rep.Err != nil {
		fmt.Fprintf(&b, "Error: %v\n", rep.Err)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderTree(rep *types.Report) error {
	var b strings.Builder
	for _, item := range treeItems(rep) {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", item.Level), item.Name)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderVars(v VarsView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", v.Template)
	for _, f := range v.Fields {
		fmt.Fprintf(&b, "  %s (%s)", f.Name, f.Kind)
		if f.Required {
			b.WriteString(" required")
		}
		if def := f.DefaultText(); def != "" {
			fmt.Fprintf(&b, " default=%s", def)
		}
		if f.Transform != "" {
			fmt.Fprintf(&b, " transform=%s", f.Transform)
		}
		if f.Description != "" {
			fmt.Fprintf(&b, ": %s", f.Description)
		}
		b.WriteString("\n")
	}
	if len(v.Undeclared) > 0 {
		fmt.Fprintf(&b, "Undeclared: %s\n", strings.Join(v.Undeclared, ", "))
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
