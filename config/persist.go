package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dtsgen/errors"
)

const fileComment = "# dtsgen configuration\n# Keys can be overridden with DTSGEN_<SECTION>_<KEY> environment variables.\n\n"

// Marshal renders c as TOML or YAML.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "", "toml":
		data, err := toml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config")
		}
		return data, nil
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config")
		}
		return data, nil
	}
	return nil, errors.NewInvalidInputError("unknown config format %q (want toml or yaml)", format)
}

// WriteDefault writes a config file holding every default value. An
// existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it")
	}

	data, err := Defaults().Marshal("toml")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, append([]byte(fileComment), data...), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
