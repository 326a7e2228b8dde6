package config

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.dtsgen/config.toml
	SourceProject     ConfigSource = "project"     // nearest dtsgen.toml
	SourceEnvironment ConfigSource = "environment" // DTSGEN_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource // The type of config source
	Path   string       // File path or environment variable name
}

// configSources is filled while config files are merged
var configSources = make(map[string]SourceInfo)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// Introspect returns every effective setting, sorted by key, with the
// source that provided it.
func Introspect() []SettingInfo {
	v := GetViper()

	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := configSources[key]; ok {
			info = si
		}

		envKey := EnvVar(key)
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		settings = append(settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return settings
}

// EnvVar returns the environment variable that overrides key
func EnvVar(key string) string {
	return "DTSGEN_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Location is a config file dtsgen looks at
type Location struct {
	Source ConfigSource
	Path   string
	Exists bool
}

// Locations lists the config files in precedence order
func Locations() []Location {
	var out []Location
	if p := UserConfigPath(); p != "" {
		out = append(out, Location{Source: SourceUser, Path: p, Exists: exists(p)})
	}
	if p := FindProjectConfig(); p != "" {
		out = append(out, Location{Source: SourceProject, Path: p, Exists: true})
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
