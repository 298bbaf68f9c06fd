// SPDX-License-Identifier: MPL-2.0

package config

import "os"

// ConfigDirEnv names the environment variable that pins the config directory.
// The CLI end-to-end tests use it to keep runs hermetic.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

var configDirOverride string

// SetConfigDirOverride pins ConfigDir to dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the override set by SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}

func overriddenConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	return os.Getenv(ConfigDirEnv)
}
