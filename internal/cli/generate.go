package cli

import (
	"context"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/config"
	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/filesystem"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/arthur-debert/svcgen/pkg/materialize"
	"github.com/arthur-debert/svcgen/pkg/templates"
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/arthur-debert/svcgen/pkg/variables"
	"github.com/spf13/cobra"
)

// generateFlags are shared by new and preview
type generateFlags struct {
	template    string
	output      string
	set         []string
	noOverwrite bool
	bestEffort  bool
	dryRun      bool
	format      string
	noPrompt    bool
}

func (f *generateFlags) register(cmd *cobra.Command, withWriteFlags bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.template, "template", "t", "", MsgFlagTemplate)
	flags.StringVarP(&f.output, "output", "o", "", MsgFlagOutput)
	flags.StringArrayVarP(&f.set, "set", "s", nil, MsgFlagSet)
	flags.StringVar(&f.format, "format", "", MsgFlagFormat)
	flags.BoolVar(&f.noPrompt, "no-prompt", false, MsgFlagNoPrompt)
	if withWriteFlags {
		flags.BoolVar(&f.noOverwrite, "no-overwrite", false, MsgFlagNoOverwrite)
		flags.BoolVar(&f.bestEffort, "best-effort", false, MsgFlagBestEffort)
		flags.BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	}
}

// overrides turns the flags that were given into config keys
func (f *generateFlags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	changed := cmd.Flags().Changed
	if changed("template") {
		out["template.source"] = f.template
	}
	if changed("output") {
		out["output.root"] = f.output
	}
	if changed("format") {
		out["output.format"] = f.format
	}
	if f.noPrompt {
		out["output.prompt"] = false
	}
	if f.noOverwrite {
		out["output.overwrite"] = false
	}
	if f.bestEffort {
		out["output.policy"] = materialize.BestEffort.String()
	}
	if f.dryRun {
		out["output.dry_run"] = true
	}
	for _, kv := range f.set {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || !types.IsIdentifier(name) {
			return nil, errors.Newf(errors.ErrInvalidInput, "--set expects name=value, got %q", kv).
				WithDetail("flag", "set")
		}
		out["vars."+name] = value
	}
	return out, nil
}

// job is a loaded configuration, template and variable context
type job struct {
	cfg  *config.Config
	tmpl *templates.Template
	vars types.Context
}

func loadJob(ctx context.Context, cmd *cobra.Command, env *environment, flags *generateFlags) (*job, error) {
	logger := logging.GetLogger("cli")

	overrides, err := flags.overrides(cmd)
	if err != nil {
		return nil, err
	}
	configFile, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{File: configFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	tmpl, err := templates.Open(env.fs, cfg.Template.Source, templates.LoadOptions{Exclude: cfg.Template.Exclude})
	if err != nil {
		return nil, err
	}

	provided := cfg.Vars
	if provided == nil {
		provided = map[string]interface{}{}
	}
	provided = defaultAuthor(ctx, env, tmpl.Schema, provided)
	if missing := tmpl.Schema.Missing(provided); len(missing) > 0 && cfg.Output.Prompt && env.interactive() {
		logger.Debug().Strs("fields", missing).Msg("Prompting for variables")
		provided, err = env.prompter.Ask(ctx, fieldsNamed(tmpl.Schema, missing), provided)
		if err != nil {
			return nil, err
		}
	}

	vars, err := tmpl.Schema.Build(provided)
	if err != nil {
		return nil, err
	}
	return &job{cfg: cfg, tmpl: tmpl, vars: vars}, nil
}

func fieldsNamed(s *variables.Schema, names []string) []variables.Field {
	fields := make([]variables.Field, 0, len(names))
	for _, name := range names {
		if f, ok := s.Field(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// run materializes the job. dryRun forces a dry run regardless of config.
func (j *job) run(ctx context.Context, env *environment, dryRun bool) (*types.Report, error) {
	policy, err := j.cfg.Output.FailurePolicy()
	if err != nil {
		return nil, err
	}
	opts := materialize.DefaultOptions()
	opts.Overwrite = j.cfg.Output.Overwrite
	opts.Policy = policy
	opts.DryRun = dryRun || j.cfg.Output.DryRun
	opts.Substitution = j.tmpl.Substitution

	return materialize.Materialize(ctx, filesystem.New(env.fs), j.tmpl.Root, j.vars, j.cfg.Output.Root, opts), nil
}
