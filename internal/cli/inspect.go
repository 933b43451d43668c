package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/config"
	"github.com/arthur-debert/svcgen/pkg/filesystem"
	"github.com/arthur-debert/svcgen/pkg/templates"
	"github.com/arthur-debert/svcgen/pkg/ui"
	"github.com/spf13/cobra"
)

func newVarsCmd(env *environment) *cobra.Command {
	var (
		template string
		format   string
	)

	cmd := &cobra.Command{
		Use:     "vars",
		Short:   MsgVarsShort,
		Long:    MsgVarsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("template") {
				overrides["template.source"] = template
			}
			if cmd.Flags().Changed("format") {
				overrides["output.format"] = format
			}
			configFile, _ := cmd.Root().PersistentFlags().GetString("config")
			cfg, err := config.Load(config.LoadOptions{File: configFile, Overrides: overrides})
			if err != nil {
				return err
			}

			tmpl, err := templates.Open(env.fs, cfg.Template.Source, templates.LoadOptions{Exclude: cfg.Template.Exclude})
			if err != nil {
				return err
			}
			ids, err := tmpl.Identifiers()
			if err != nil {
				return err
			}
			undeclared, err := tmpl.Undeclared()
			if err != nil {
				return err
			}

			r, err := renderer(cmd, cfg.Output.Format)
			if err != nil {
				return err
			}
			return r.RenderVars(ui.VarsView{
				Template:    tmpl.Ref,
				Fields:      tmpl.Schema.Fields(),
				Identifiers: ids,
				Undeclared:  undeclared,
			})
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", MsgFlagTemplate)
	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b strings.Builder
			for _, name := range templates.Builtins() {
				tmpl, err := templates.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, "%s%-10s %s\n", templates.BuiltinPrefix, name, tmpl.Description)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

func newGenConfigCmd(env *environment) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.Generate()
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			target := config.ProjectFiles[0]
			if err := filesystem.New(env.fs).WriteFile(target, []byte(content), force); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}
