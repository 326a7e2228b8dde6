package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/typegen/typescript"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := doclet.ParseFormat(c.Input.Format); err != nil {
		return errors.Wrap(err, "input.format")
	}

	// Filename is only used for directory outputs but must always be a plain name
	if c.Output.Filename == "" {
		return errors.New("output.filename cannot be empty")
	}
	if strings.ContainsAny(c.Output.Filename, `/\`) {
		return errors.Newf("output.filename must be a file name, got %q", c.Output.Filename)
	}

	if _, err := typescript.ParseUnresolvedMode(c.Emit.UnresolvedTypes); err != nil {
		return errors.Wrap(err, "emit.unresolved_types")
	}

	if c.Compile.APIVersion != "" {
		if _, err := semver.NewVersion(c.Compile.APIVersion); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "compile.api_version %q", c.Compile.APIVersion),
				"use a semantic version such as 2.1.0")
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
