package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/svcgen/pkg/types"
)

// jsonRenderer writes one indented JSON document per call
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(out io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

type entryView struct {
	Path string          `json:"path"`
	Node string          `json:"node"`
	Kind types.EntryKind `json:"kind"`
}

type warningView struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type reportView struct {
	State    types.RunState `json:"state"`
	DryRun   bool           `json:"dry_run"`
	Entries  []entryView    `json:"entries"`
	Warnings []warningView  `json:"warnings"`
	Summary  string         `json:"summary"`
	Error    *errorView     `json:"error,omitempty"`
}

func newReportView(r *types.Report) reportView {
	view := reportView{
		State:    r.State,
		DryRun:   r.DryRun,
		Entries:  make([]entryView, len(r.Entries)),
		Warnings: make([]warningView, len(r.Warnings)),
		Summary:  Summary(r),
		Error:    newErrorView(r.Err),
	}
	for i, e := range r.Entries {
		view.Entries[i] = entryView{Path: e.Path, Node: e.Node.String(), Kind: e.Kind}
	}
	for i, w := range r.Warnings {
		view.Warnings[i] = warningView{Path: w.Path, Message: w.Message}
	}
	return view
}

func (r *jsonRenderer) RenderReport(rep *types.Report) error {
	return r.encoder.Encode(newReportView(rep))
}

func (r *jsonRenderer) RenderTree(rep *types.Report) error {
	return r.encoder.Encode(map[string][]string{"paths": rep.Paths()})
}

func (r *jsonRenderer) RenderVars(v VarsView) error {
	return r.encoder.Encode(v)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]*errorView{"error": newErrorView(err)})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
