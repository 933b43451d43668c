package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const sampleHeader = `# svcgen configuration
#
# Save as svcgen.toml in the directory you run svcgen from, or as
# $XDG_CONFIG_HOME/svcgen/config.toml for per-user settings.
# Every value below is the built-in default; uncomment to change it.

`

// sample is the shape written by Generate
type sample struct {
	Template TemplateConfig         `toml:"template"`
	Output   OutputConfig           `toml:"output"`
	Vars     map[string]interface{} `toml:"vars" comment:"Template variables, used before prompting"`
}

// Generate returns a commented sample configuration built from the
// defaults
func Generate() (string, error) {
	k, err := defaultsOnly()
	if err != nil {
		return "", err
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return "", err
	}

	s := sample{
		Template: cfg.Template,
		Output:   cfg.Output,
		Vars: map[string]interface{}{
			"name": "auth",
			"port": 8000,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(s); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sample configuration")
	}
	return sampleHeader + commentOutConfigValues(buf.String()), nil
}

// commentOutConfigValues comments out every assignment line, leaving
// comments, blank lines and table headers alone
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
