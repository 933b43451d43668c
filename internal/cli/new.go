package cli

import (
	"github.com/spf13/cobra"
)

func newNewCmd(env *environment) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:     "new",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		Example: MsgNewExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := loadJob(ctx, cmd, env, &flags)
			if err != nil {
				return err
			}
			r, err := renderer(cmd, j.cfg.Output.Format)
			if err != nil {
				return err
			}

			report, err := j.run(ctx, env, false)
			if err != nil {
				return err
			}
			if err := r.RenderReport(report); err != nil {
				return err
			}
			if report.Failed() {
				return ErrRunFailed
			}
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newPreviewCmd(env *environment) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:     "preview",
		Short:   MsgPreviewShort,
		Long:    MsgPreviewLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := loadJob(ctx, cmd, env, &flags)
			if err != nil {
				return err
			}
			r, err := renderer(cmd, j.cfg.Output.Format)
			if err != nil {
				return err
			}

			report, err := j.run(ctx, env, true)
			if err != nil {
				return err
			}
			if err := r.RenderTree(report); err != nil {
				return err
			}
			if report.Failed() {
				if err := r.RenderError(report.Err); err != nil {
					return err
				}
				return ErrRunFailed
			}
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}
