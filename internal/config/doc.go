// SPDX-License-Identifier: MPL-2.0

// Package config handles forge configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/forge/config.cue on Linux,
// ~/Library/Application Support/forge/config.cue on macOS and
// %APPDATA%\forge\config.cue on Windows. Files are validated against the
// embedded CUE schema (config_schema.cue) and every key can be overridden
// with a FORGE_ environment variable, e.g. FORGE_UI_VERBOSE=true.
package config
