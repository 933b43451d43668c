package materialize

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/arthur-debert/svcgen/pkg/types"
)

// Run is a single materialization pass. It is not safe for concurrent use
// and cannot be restarted.
type Run struct {
	fs     types.FS
	opts   Options
	vars   types.Context
	state  types.RunState
	report *types.Report
}

// New creates a run that writes through fs
func New(fs types.FS, opts Options) *Run {
	return &Run{
		fs:    fs,
		opts:  opts,
		state: types.StateNotStarted,
	}
}

// Materialize runs a fresh Run with opts
func Materialize(ctx context.Context, fs types.FS, root types.Node, vars types.Context, destinationRoot string, opts Options) *types.Report {
	return New(fs, opts).Materialize(ctx, root, vars, destinationRoot)
}

// State returns the current lifecycle state
func (r *Run) State() types.RunState {
	return r.state
}

// Materialize writes root under destinationRoot. The root node's own name is
// resolved and becomes the first path element below destinationRoot.
func (r *Run) Materialize(ctx context.Context, root types.Node, vars types.Context, destinationRoot string) *types.Report {
	if r.state != types.StateNotStarted {
		return &types.Report{
			State: types.StateFailed,
			Err: errors.Newf(errors.ErrRunNotRestartable,
				"run already %s; start a new run to retry", r.state).
				WithDetail("state", string(r.state)),
		}
	}

	logger := r.opts.Logger
	start := time.Now()

	r.state = types.StateInProgress
	r.vars = vars
	r.report = &types.Report{State: r.state, DryRun: r.opts.DryRun}

	logger.Debug().
		Str("destination", destinationRoot).
		Str("policy", r.opts.Policy.String()).
		Bool("overwrite", r.opts.Overwrite).
		Bool("dry_run", r.opts.DryRun).
		Msg("Materialization started")

	err := r.materializeRoot(ctx, root, destinationRoot)
	r.finish(err)

	logger.Info().
		Str("state", string(r.state)).
		Int("created", r.report.Count(types.EntryCreated)).
		Int("overwritten", r.report.Count(types.EntryOverwritten)).
		Int("skipped", r.report.Count(types.EntrySkipped)).
		Int("warnings", len(r.report.Warnings)).
		Dur("duration", time.Since(start)).
		Msg("Materialization finished")

	return r.report
}

func (r *Run) materializeRoot(ctx context.Context, root types.Node, destinationRoot string) error {
	if err := checkCancelled(ctx, destinationRoot); err != nil {
		return err
	}
	name, err := r.resolveName(root, destinationRoot)
	if err != nil {
		return err
	}
	return r.visit(ctx, root, filepath.Join(destinationRoot, name))
}

// finish moves the run into its terminal state. A cancellation always
// becomes the terminal error; anything recorded before it is kept as a
// warning.
func (r *Run) finish(err error) {
	if err != nil {
		switch {
		case r.report.Err == nil:
			r.report.Err = err
		case errors.IsErrorCode(err, errors.ErrCancelled):
			prev := r.report.Err
			r.report.Warn(errors.GetErrorPath(prev), prev.Error(), prev)
			r.report.Err = err
		default:
			r.report.Warn(errors.GetErrorPath(err), err.Error(), err)
		}
	}

	if r.report.Err != nil {
		r.state = types.StateFailed
		r.opts.Logger.Error().Err(r.report.Err).Msg("Materialization failed")
	} else {
		r.state = types.StateCompleted
	}
	r.report.State = r.state
}

// contain decides whether a failed branch stops the run. Under best-effort
// the failure is recorded and nil is returned so siblings continue.
func (r *Run) contain(err error) error {
	if err == nil {
		return nil
	}
	if r.opts.Policy == FailFast || errors.IsErrorCode(err, errors.ErrCancelled) {
		return err
	}
	if r.report.Err == nil {
		r.report.Err = err
	} else {
		r.report.Warn(errors.GetErrorPath(err), err.Error(), err)
	}
	r.opts.Logger.Warn().Err(err).Msg("Branch abandoned")
	return nil
}

func (r *Run) visit(ctx context.Context, n types.Node, path string) error {
	switch node := n.(type) {
	case *types.Directory:
		return r.directory(ctx, node, path)
	case *types.File:
		return r.file(node, path)
	default:
		return errors.Newf(errors.ErrInternal, "unknown node type %T", n).WithDetail("path", path)
	}
}

func (r *Run) directory(ctx context.Context, dir *types.Directory, path string) error {
	kind, err := r.fs.Exists(path)
	if err != nil {
		return errors.AtPath(err, path)
	}

	switch kind {
	case types.PathFile:
		return errors.Newf(errors.ErrPathConflict,
			"cannot create directory, a file is in the way").WithPath(path)
	case types.PathDirectory:
		r.report.Add(path, types.NodeDirectory, types.EntrySkipped)
	default:
		if !r.opts.DryRun {
			if err := r.fs.CreateDirectory(path, true); err != nil {
				return errors.AtPath(err, path)
			}
		}
		r.report.Add(path, types.NodeDirectory, types.EntryCreated)
	}
	r.opts.Logger.Debug().Str("path", path).Str("exists", kind.String()).Msg("Directory")

	children := dir.Children()
	names, failed, err := r.childNames(children, path)
	if err != nil {
		return err
	}

	for i, child := range children {
		if err := checkCancelled(ctx, path); err != nil {
			return err
		}
		if failed[i] != nil {
			if err := r.contain(failed[i]); err != nil {
				return err
			}
			continue
		}
		if err := r.contain(r.visit(ctx, child, filepath.Join(path, names[i]))); err != nil {
			return err
		}
	}
	return nil
}

// childNames resolves every child name of a directory before any child is
// created so that a collision leaves the directory empty. A child whose name
// cannot be resolved gets its error in failed and takes no part in the
// collision check; its siblings are still materialized.
func (r *Run) childNames(children []types.Node, parent string) (names []string, failed []error, err error) {
	names = make([]string, len(children))
	failed = make([]error, len(children))
	seen := make(map[string]int, len(children))

	for i, child := range children {
		name, err := r.resolveName(child, parent)
		if err != nil {
			failed[i] = err
			continue
		}
		if j, dup := seen[name]; dup {
			collided := filepath.Join(parent, name)
			return nil, nil, errors.Newf(errors.ErrSiblingNameCollision,
				"%q and %q both resolve to %q", children[j].RawName(), child.RawName(), name).
				WithDetails(map[string]interface{}{
					"name":   name,
					"first":  children[j].RawName(),
					"second": child.RawName(),
				}).WithPath(collided)
		}
		seen[name] = i
		names[i] = name
	}
	return names, failed, nil
}

func (r *Run) file(f *types.File, path string) error {
	content, err := substitute.ResolveWith(f.RawContent(), r.vars, r.opts.Substitution)
	if err != nil {
		return errors.AtPath(err, path)
	}

	kind, err := r.fs.Exists(path)
	if err != nil {
		return errors.AtPath(err, path)
	}

	entry := types.EntryCreated
	switch kind {
	case types.PathDirectory:
		return errors.New(errors.ErrPathConflict, "cannot write file, a directory is in the way").
			WithPath(path)
	case types.PathFile:
		if !r.opts.Overwrite {
			return errors.New(errors.ErrFileAlreadyExists, "file already exists and overwrite is disabled").
				WithPath(path)
		}
		entry = types.EntryOverwritten
	}

	if !r.opts.DryRun {
		if err := r.fs.WriteFile(path, []byte(content), r.opts.Overwrite); err != nil {
			return errors.AtPath(err, path)
		}
	}
	r.report.Add(path, types.NodeFile, entry)
	r.opts.Logger.Debug().Str("path", path).Str("kind", string(entry)).Int("bytes", len(content)).Msg("File")
	return nil
}

// resolveName resolves a node name and checks that it is a single path
// element. Names never expand sequences, so a
// list value in a name fails with ErrSequenceValue. Errors name the path the
// node would have had, built from its raw name.
func (r *Run) resolveName(n types.Node, parent string) (string, error) {
	attempted := filepath.Join(parent, n.RawName())
	name, err := substitute.Resolve(n.RawName(), r.vars)
	if err != nil {
		return "", errors.AtPath(err, attempted)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Newf(errors.ErrInvalidName, "name %q resolves to %q, which is not a single path element",
			n.RawName(), name).
			WithDetails(map[string]interface{}{"name": name, "raw": n.RawName()}).
			WithPath(attempted)
	}
	return name, nil
}

func checkCancelled(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCancelled, "materialization cancelled").WithPath(path)
	}
	return nil
}
