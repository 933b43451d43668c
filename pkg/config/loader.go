package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "SVCGEN_"
	// envNest separates sections in environment variable names
	envNest = "__"
)

// ProjectFiles are searched, in order, when no config file is given
var ProjectFiles = []string{"svcgen.toml", ".svcgen.toml", "svcgen.yaml", ".svcgen.yaml"}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// File is an explicit project config file; it must exist
	File string
	// Dir is searched for ProjectFiles when File is empty. Defaults to ".".
	Dir string
	// Overrides are flat dotted keys ("output.overwrite") applied last
	Overrides map[string]interface{}
}

// Load reads and validates the layered configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k, err := defaultsOnly()
	if err != nil {
		return nil, err
	}

	var loaded []string
	if p := UserConfigPath(); fileExists(p) {
		if err := loadFile(k, p); err != nil {
			return nil, err
		}
		loaded = append(loaded, p)
	}

	project, err := projectFile(opts)
	if err != nil {
		return nil, err
	}
	if project != "" {
		if err := loadFile(k, project); err != nil {
			return nil, err
		}
		loaded = append(loaded, project)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Files = loaded
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("files", loaded).Str("template", cfg.Template.Source).Msg("Configuration loaded")
	return cfg, nil
}

func defaultsOnly() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if cfg.Vars == nil {
		cfg.Vars = make(map[string]interface{})
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func projectFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if !fileExists(opts.File) {
			return "", errors.Newf(errors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectFiles {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// UserConfigPath returns the per-user config file location.
// XDG_CONFIG_HOME is read at call time.
func UserConfigPath() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		home = xdg.ConfigHome
	}
	return filepath.Join(home, "svcgen", "config.toml")
}

// envKey maps SVCGEN_OUTPUT__DRY_RUN to output.dry_run. Section and key
// names are lower-cased except below vars, where variable names keep their
// case: SVCGEN_VARS__corsOrigins -> vars.corsOrigins.
func envKey(s string) string {
	parts := strings.Split(strings.TrimPrefix(s, EnvPrefix), envNest)
	parts[0] = strings.ToLower(parts[0])
	if parts[0] != "vars" {
		for i := range parts {
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, ".")
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
