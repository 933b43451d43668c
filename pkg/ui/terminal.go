package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// terminalRenderer writes lipgloss-styled output and pterm trees
type terminalRenderer struct {
	out io.Writer
}

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out}
}

func (r *terminalRenderer) RenderReport(rep *types.Report) error {
	var b strings.Builder
	title := "Materialized"
	if rep.DryRun {
		title = "Dry run"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	for _, e := range rep.Entries {
		p := pathStyle
		if e.Node == types.NodeDirectory {
			p = dirStyle
		}
		b.WriteString(kindStyle(e.Kind).Render(string(e.Kind)) + p.Render(e.Path) + "\n")
	}
	for _, w := range rep.Warnings {
		b.WriteString(warningStyle.Render("warning: ") + w.Message + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render(Summary(rep)) + "\n")
	if rep.Err != nil {
		b.WriteString(errorStyle.Render("Error: ") + rep.Err.Error() + "\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *terminalRenderer) RenderTree(rep *types.Report) error {
	items := treeItems(rep)
	if len(items) == 0 {
		return nil
	}
	list := make(pterm.LeveledList, len(items))
	for i, item := range items {
		text := item.Name
		if item.Dir {
			text = dirStyle.Render(text)
		}
		if item.Kind == types.EntryOverwritten {
			text += warningStyle.Render(" (overwrite)")
		}
		list[i] = pterm.LeveledListItem{Level: item.Level, Text: text}
	}

	rendered, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, rendered)
	return err
}

func (r *terminalRenderer) RenderVars(v VarsView) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Template) + "\n")
	for _, f := range v.Fields {
		b.WriteString(nameStyle.Render(f.Name) + mutedStyle.Render(" "+string(f.Kind)))
		if f.Required {
			b.WriteString(warningStyle.Render(" required"))
		}
		b.WriteString("\n")
		if f.Description != "" {
			b.WriteString("  " + f.Description + "\n")
		}
		if def := f.DefaultText(); def != "" {
			b.WriteString(mutedStyle.Render("  default: "+def) + "\n")
		}
	}
	if len(v.Undeclared) > 0 {
		b.WriteString("\n" + warningStyle.Render("undeclared: "+strings.Join(v.Undeclared, ", ")) + "\n")
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.out, errorStyle.Render("Error: ")+err.Error())
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
