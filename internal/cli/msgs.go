package cli

import (
	_ "embed"
	"strings"
)

const (
	MsgRootShort       = "Create services from templates"
	MsgNewShort        = "Create a service from a template"
	MsgPreviewShort    = "Show the tree a template would produce"
	MsgVarsShort       = "List a template's variables"
	MsgVarsLong        = "Vars lists the variables a template declares, with their kinds and defaults, and any identifier the tree uses without declaring it."
	MsgTemplatesShort  = "List built-in templates"
	MsgGenConfigShort  = "Print a sample configuration file"
	MsgGenConfigLong   = "Print a commented svcgen.toml with every setting at its default. With --write it is saved to the current directory."
	MsgDocsShort       = "Read the template and configuration guides"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default: svcgen.toml in the current directory)"
	MsgFlagTemplate    = "Template: builtin:NAME, a .yaml manifest or a directory"
	MsgFlagOutput      = "Directory to create the service in"
	MsgFlagSet         = "Set a variable, as name=value (repeatable)"
	MsgFlagNoOverwrite = "Fail instead of replacing files that already exist"
	MsgFlagBestEffort  = "Keep going after a failure and report every problem"
	MsgFlagDryRun      = "Report what would be written without writing"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagNoPrompt    = "Never ask for missing variables"
	MsgFlagWrite       = "Write svcgen.toml instead of printing it"
	MsgFlagForce       = "Replace an existing svcgen.toml"

	MsgConfigWritten = "Wrote %s\n"
	MsgNoTopic       = "unknown topic %q, available: %s"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/new-long.txt
	msgNewLongRaw string
	MsgNewLong    = strings.TrimSpace(msgNewLongRaw)

	//go:embed msgs/new-example.txt
	msgNewExampleRaw string
	MsgNewExample    = strings.TrimRight(msgNewExampleRaw, "\n")

	//go:embed msgs/preview-long.txt
	msgPreviewLongRaw string
	MsgPreviewLong    = strings.TrimSpace(msgPreviewLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
