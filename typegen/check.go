package typegen

import (
	"os"
	"strings"

	"github.com/teranos/dtsgen/errors"
)

// CheckResult holds the result of comparing generated text with a file
type CheckResult struct {
	Path     string
	UpToDate bool
	// Missing is set when the file does not exist
	Missing bool
	// Line is the first differing line of the compared content (1-based)
	Line int
	// Want and Got are the generated and existing text of that line
	Want, Got string
}

// CheckFile compares generated with the file at path, ignoring the
// generator version line.
func CheckFile(generated, path string) (*CheckResult, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{Path: path, Missing: true}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	want := filterMetadataLines([]byte(generated))
	got := filterMetadataLines(existing)
	result := &CheckResult{Path: path, UpToDate: want == got}
	if !result.UpToDate {
		result.Line, result.Want, result.Got = firstDifference(want, got)
	}
	return result, nil
}

// Err returns an error marked with errors.ErrOutOfDate unless the file is
// up to date.
func (r *CheckResult) Err() error {
	switch {
	case r.UpToDate:
		return nil
	case r.Missing:
		err := errors.Mark(errors.Newf("%s does not exist", r.Path), errors.ErrOutOfDate)
		return errors.WithHint(err, "run dtsgen generate to create it")
	}
	err := errors.Mark(errors.Newf("%s is out of date at line %d", r.Path, r.Line), errors.ErrOutOfDate)
	err = errors.WithDetailf(err, "want: %s\ngot:  %s", r.Want, r.Got)
	return errors.WithHint(err, "run dtsgen generate to regenerate it")
}

// filterMetadataLines removes the "// Generator version:" line, which
// changes with every release and doesn't represent a declaration change.
// Line endings are normalized to "\n".
func filterMetadataLines(content []byte) string {
	var result strings.Builder
	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), versionPrefix) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

func firstDifference(want, got string) (int, string, string) {
	w := strings.Split(want, "\n")
	g := strings.Split(got, "\n")
	for i := 0; i < len(w) || i < len(g); i++ {
		var wl, gl string
		if i < len(w) {
			wl = w[i]
		}
		if i < len(g) {
			gl = g[i]
		}
		if wl != gl || i >= len(w) || i >= len(g) {
			return i + 1, wl, gl
		}
	}
	return 0, "", ""
}
