package types

// EntryKind records what happened to a path during materialization.
type EntryKind string

const (
	// EntryCreated means the path did not exist and was created
	EntryCreated EntryKind = "created"
	// EntryOverwritten means an existing file was replaced
	EntryOverwritten EntryKind = "overwritten"
	// EntrySkipped means an existing directory was reused as-is
	EntrySkipped EntryKind = "skipped"
)

// RunState is the lifecycle state of a materialization run.
//
// NotStarted -> InProgress -> Completed | Failed. There is no pause state and
// a run cannot be restarted.
type RunState string

const (
	StateNotStarted RunState = "not_started"
	StateInProgress RunState = "in_progress"
	StateCompleted  RunState = "completed"
	StateFailed     RunState = "failed"
)

// Entry is one path produced (or reused) by a run
type Entry struct {
	Path string    `json:"path"`
	Node NodeKind  `json:"-"`
	Kind EntryKind `json:"kind"`
}

// Warning is a non-fatal problem recorded during a run
type Warning struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Report is the outcome of a materialization run: every path touched in
// order, any warnings, and at most one terminal error.
type Report struct {
	Entries  []Entry   `json:"entries"`
	Warnings []Warning `json:"warnings,omitempty"`
	Err      error     `json:"-"`
	State    RunState  `json:"state"`
	DryRun   bool      `json:"dry_run,omitempty"`
}

// Failed reports whether the run ended with a terminal error
func (r *Report) Failed() bool {
	return r.Err != nil
}

// Add appends an entry
func (r *Report) Add(path string, node NodeKind, kind EntryKind) {
	r.Entries = append(r.Entries, Entry{Path: path, Node: node, Kind: kind})
}

// Warn appends a warning
func (r *Report) Warn(path, message string, err error) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Message: message, Err: err})
}

// Paths returns the entry paths in order
func (r *Report) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Count returns the number of entries of the given kind
func (r *Report) Count(kind EntryKind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Lookup returns the entry for path, if any
func (r *Report) Lookup(path string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}
