// Package cli builds the svcgen command tree.
package cli

import (
	"context"
	"embed"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/svcgen/internal/version"
	"github.com/arthur-debert/svcgen/pkg/cobrax/topics"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/arthur-debert/svcgen/pkg/prompt"
	"github.com/arthur-debert/svcgen/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// ErrRunFailed is returned after a failed run has already been reported
var ErrRunFailed = stderrors.New("run failed")

// environment is what commands touch outside their flags
type environment struct {
	fs          afero.Fs
	prompter    prompt.Prompter
	interactive func() bool
	gitUser     func(ctx context.Context) string
}

func defaultEnvironment() *environment {
	return &environment{
		fs:       afero.NewOsFs(),
		prompter: prompt.FormPrompter{},
		interactive: func() bool {
			return prompt.Interactive(os.Stdin, os.Stdout)
		},
		gitUser: gitUserName,
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultEnvironment())
}

func newRootCmd(env *environment) *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "svcgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringP("config", "c", "", MsgFlagConfig)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "COMMANDS:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newNewCmd(env))
	rootCmd.AddCommand(newPreviewCmd(env))
	rootCmd.AddCommand(newVarsCmd(env))
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newGenConfigCmd(env))
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if tm, err := newTopicManager(topics.NewGlamourRenderer()); err == nil {
		tm.Attach(rootCmd)
	} else {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// newTopicManager loads the embedded guides. A nil renderer prints them raw.
func newTopicManager(r topics.Renderer) (*topics.TopicManager, error) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return nil, err
	}
	return topics.New(sub, topics.Options{Extensions: []string{".md"}, Renderer: r})
}

// renderer returns the renderer for the configured format on cmd's output
func renderer(cmd *cobra.Command, format string) (ui.Renderer, error) {
	f, err := ui.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(f, cmd.OutOrStdout())
}
