// Package config loads svcgen configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/svcgen/config.toml
//  3. the project config: --config, or the first of svcgen.toml,
//     .svcgen.toml, svcgen.yaml, .svcgen.yaml in the working directory
//  4. SVCGEN_* environment variables, with "__" separating sections:
//     SVCGEN_OUTPUT__OVERWRITE=false, SVCGEN_VARS__port=9000
//  5. command line overrides
package config
