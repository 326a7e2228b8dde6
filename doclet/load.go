package doclet

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

// Format selects the decoder for a doclet dump.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.NewInvalidInputError("unknown input format %q (want auto, json or yaml)", s)
}

// DetectFormat picks a format from a file extension. ok is false for files
// that are not doclet dumps.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Parse decodes a doclet dump. jsdoc -X writes a JSON array; YAML input is a
// list of the same records.
func Parse(data []byte, format Format) ([]Doclet, error) {
	var doclets []Doclet
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doclets); err != nil {
			return nil, errors.WrapInvalidInput(err, "failed to decode YAML doclets")
		}
	case FormatJSON, FormatAuto, "":
		if err := json.Unmarshal(data, &doclets); err != nil {
			if format != FormatJSON && looksLikeYAML(data) {
				return Parse(data, FormatYAML)
			}
			return nil, errors.WrapInvalidInput(err, "failed to decode JSON doclets")
		}
	default:
		return nil, errors.NewInvalidInputError("unknown input format %q", format)
	}
	return doclets, nil
}

func looksLikeYAML(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "---")
}

// ReadFile reads one doclet dump. FormatAuto picks the decoder from the file
// extension.
func ReadFile(path string, format Format) ([]Doclet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "doclet file %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if format == FormatAuto || format == "" {
		if detected, ok := DetectFormat(path); ok {
			format = detected
		}
	}

	doclets, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	logger.Debugw("read doclets",
		logger.FieldFile, path,
		logger.FieldCount, len(doclets))
	return doclets, nil
}

// Read loads doclets from a file, or from every dump in a directory in
// lexical path order. Subdirectories are only visited when recursive is set.
func Read(path string, recursive bool, format Format) ([]Doclet, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrNotFound, "input path %s", path),
				"generate a dump with: jsdoc -X src > doclets.json")
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if !info.IsDir() {
		return ReadFile(path, format)
	}

	files, err := listDumps(path, recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "no doclet dumps in %s", path),
			"expected *.json, *.yaml or *.yml files")
	}

	var all []Doclet
	for _, f := range files {
		doclets, err := ReadFile(f, format)
		if err != nil {
			return nil, err
		}
		all = append(all, doclets...)
	}
	return all, nil
}

func listDumps(dir string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := DetectFormat(p); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
