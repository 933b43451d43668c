package config

import (
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/materialize"
)

// Formats accepted by output.format
var Formats = []string{"auto", "term", "text", "json"}

// Config is the resolved svcgen configuration
type Config struct {
	Template TemplateConfig         `koanf:"template" toml:"template"`
	Output   OutputConfig           `koanf:"output" toml:"output"`
	Vars     map[string]interface{} `koanf:"vars" toml:"vars"`

	// Files lists the config files that were loaded, in order
	Files []string `koanf:"-" toml:"-"`
}

// TemplateConfig selects the template
type TemplateConfig struct {
	Source  string   `koanf:"source" toml:"source" comment:"Template reference: builtin:NAME, a .yaml manifest or a directory"`
	Exclude []string `koanf:"exclude" toml:"exclude" comment:"Paths skipped when reading a directory template (doublestar globs)"`
}

// OutputConfig controls how the tree is written
type OutputConfig struct {
	Root      string `koanf:"root" toml:"root" comment:"Directory the generated tree is written under"`
	Overwrite bool   `koanf:"overwrite" toml:"overwrite" comment:"Replace files that already exist"`
	Policy    string `koanf:"policy" toml:"policy" comment:"fail-fast or best-effort"`
	DryRun    bool   `koanf:"dry_run" toml:"dry_run" comment:"Report what would be written without touching the disk"`
	Format    string `koanf:"format" toml:"format" comment:"auto, term, text or json"`
	Prompt    bool   `koanf:"prompt" toml:"prompt" comment:"Ask for missing required variables when attached to a terminal"`
}

// FailurePolicy parses output.policy
func (o OutputConfig) FailurePolicy() (materialize.Policy, error) {
	return materialize.ParsePolicy(o.Policy)
}

// Validate checks values that cannot be expressed by types alone
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Template.Source) == "" {
		return errors.New(errors.ErrConfigValid, "template.source must not be empty").
			WithDetail("key", "template.source")
	}
	if _, err := c.Output.FailurePolicy(); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "output.policy").WithDetail("key", "output.policy")
	}
	if !validFormat(c.Output.Format) {
		return errors.Newf(errors.ErrConfigValid, "output.format must be one of %s, got %q",
			strings.Join(Formats, ", "), c.Output.Format).WithDetail("key", "output.format")
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
