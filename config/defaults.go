package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.path", ".")
	v.SetDefault("input.recursive", false)
	v.SetDefault("input.format", "auto")

	// Output defaults
	v.SetDefault("output.path", "") // stdout
	v.SetDefault("output.filename", "index.d.ts")
	v.SetDefault("output.header", true)

	// Emit defaults
	v.SetDefault("emit.private", false)
	v.SetDefault("emit.doc_comments", true)
	v.SetDefault("emit.unresolved_types", "any")

	// Compile defaults
	v.SetDefault("compile.strict", false)
	v.SetDefault("compile.api_version", "")

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Defaults returns the configuration with nothing but defaults applied
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg) // defaults always decode
	return &cfg
}
