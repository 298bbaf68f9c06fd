// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"forge-cli/internal/issue"
	"forge-cli/internal/tui"
	"forge-cli/pkg/installer"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "forge"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides (FORGE_UI_VERBOSE).
	EnvPrefix = "FORGE"

	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	exts := make([]Extension, len(installer.ValidFileExtensions))
	for i, ext := range installer.ValidFileExtensions {
		exts[i] = Extension(ext)
	}
	return &Config{
		Extensions: exts,
		UI: UIConfig{
			Theme: tui.ThemeDefault,
		},
		Nested: NestedConfig{
			Prompt: true,
		},
	}
}

// ConfigDir returns the forge configuration directory. FORGE_CONFIG_DIR wins
// when set; otherwise platform conventions apply: Windows uses %APPDATA%,
// macOS uses ~/Library/Application Support, and Linux/others use
// $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if dir := overriddenConfigDir(); dir != "" {
		return dir, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the config file inside ConfigDir.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults also register every key so AutomaticEnv can see it.
	defaults := DefaultConfig()
	v.SetDefault("extensions", defaults.Allowlist())
	v.SetDefault("temp_dir", string(defaults.TempDir))
	v.SetDefault("ui.theme", string(defaults.UI.Theme))
	v.SetDefault("ui.accessible", defaults.UI.Accessible)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("nested.prompt", defaults.Nested.Prompt)

	resolvedPath := ""
	loadErr := func(path string, err error) error {
		return issue.Wrap(err, issue.ConfigLoadFailedId, "load configuration", path,
			"Check that the file contains valid CUE syntax",
			"Verify the configuration values match the expected schema",
			"Run 'forge config show' to see the effective configuration")
	}

	if opts.ConfigFilePath != "" {
		// An explicit file must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				issue.ConfigLoadFailedId, "load configuration", opts.ConfigFilePath,
				"Verify the file path is correct",
				"Run 'forge config init' to create a default configuration")
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadErr(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", loadErr(cuePath, err)
			}
			resolvedPath = cuePath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", loadErr(resolvedPath, fmt.Errorf("failed to parse config: %w", err))
	}

	// Environment overrides bypass the CUE schema, so validate again.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", loadErr(resolvedPath, errs[0])
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Fields are optional, so concreteness is not required.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to ConfigDir. An
// existing file is left alone unless force is set. It returns the file path
// and whether a file was written.
func CreateDefaultConfig(force bool) (string, bool, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", false, err
	}

	if !force && fileExists(cfgPath) {
		return cfgPath, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// forge configuration file\n\n")

	sb.WriteString("extensions: [")
	for i, ext := range cfg.Extensions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(string(ext)))
	}
	sb.WriteString("]\n")

	if cfg.TempDir != "" {
		fmt.Fprintf(&sb, "temp_dir: %q\n", cfg.TempDir)
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\ttheme: %q\n", cfg.UI.Theme)
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nnested: {\n")
	fmt.Fprintf(&sb, "\tprompt: %v\n", cfg.Nested.Prompt)
	sb.WriteString("}\n")

	return sb.String()
}
