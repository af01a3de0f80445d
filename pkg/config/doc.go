// Package config builds the run-wide configuration of neostow.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. the settings file ($XDG_CONFIG_HOME/neostow/config.toml, or the
//     path in $NEOSTOW_CONFIG)
//  3. NEOSTOW_* environment variables (NEOSTOW_DIFF_TOOL sets diff.tool)
//  4. command-line flags the user actually passed
//
// The resulting Config is immutable for the rest of the run and is handed
// to every component explicitly.
package config
