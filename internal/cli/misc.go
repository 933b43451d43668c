package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/svcgen/internal/version"
	"github.com/arthur-debert/svcgen/pkg/cobrax/topics"
	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			tm, err := newTopicManager(nil)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := newTopicManager(docsRenderer(cmd))
			if err != nil {
				return err
			}
			name := "syntax"
			if len(args) == 1 {
				name = args[0]
			}
			rendered, ok := tm.Render(name)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgNoTopic, name, strings.Join(tm.ListTopics(), ", ")).
					WithDetail("topic", name)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

// docsRenderer uses glamour only when writing to a styled terminal
func docsRenderer(cmd *cobra.Command) topics.Renderer {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && ui.DetectFormat(f) == ui.FormatTerminal {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SVCGEN",
				Section: "1",
				Source:  "svcgen " + version.Version,
				Manual:  "svcgen manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
