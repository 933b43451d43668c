// Package ui renders svcgen results as styled terminal output, plain text
// or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/arthur-debert/svcgen/pkg/variables"
)

// Renderer is implemented by every output format
type Renderer interface {
	// RenderReport prints each touched path, warnings and a summary
	RenderReport(r *types.Report) error
	// RenderTree prints the paths of a report as a tree
	RenderTree(r *types.Report) error
	// RenderVars prints a template's variables
	RenderVars(v VarsView) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// VarsView describes the variables of a template
type VarsView struct {
	Template    string            `json:"template"`
	Fields      []variables.Field `json:"fields"`
	Identifiers []string          `json:"identifiers"`
	// Undeclared are referenced identifiers with no schema field
	Undeclared []string `json:"undeclared,omitempty"`
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTerminalRenderer(output), nil
	case FormatText:
		return newTextRenderer(output), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
