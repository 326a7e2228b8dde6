package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/errors"
)

const dump = `[
  {"kind": "namespace", "name": "app", "longname": "app", "description": "The app."},
  {"kind": "function", "name": "greet", "longname": "app.greet", "memberof": "app", "scope": "static",
   "params": [{"name": "who", "type": {"names": ["string"]}}],
   "returns": [{"type": {"names": ["string"]}}]}
]`

// workspace isolates config lookup and writes the dump into a temp dir
func workspace(t *testing.T) string {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doclets.json"), []byte(dump), 0644))
	return dir
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "", outputPath("", "index.d.ts"))
	assert.Equal(t, "", outputPath("-", "index.d.ts"))
	assert.Equal(t, filepath.Join(dir, "index.d.ts"), outputPath(dir, "index.d.ts"))
	assert.Equal(t, filepath.Join("types", "api.d.ts"), outputPath("types/", "api.d.ts"))
	assert.Equal(t, "out/app.d.ts", outputPath("out/app.d.ts", "index.d.ts"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.Mark(errors.New("stale"), errors.ErrOutOfDate)))
	assert.Equal(t, 1, ExitCode(errors.Wrap(errors.Mark(errors.New("cycle"), errors.ErrFatal), "build failed")))
	assert.Equal(t, 2, ExitCode(errors.New("boom")))
}

func TestDiagnosticRows(t *testing.T) {
	rows := diagnosticRows([]diag.Diagnostic{
		{
			Severity: diag.SeverityWarning,
			Kind:     diag.KindUnresolvedType,
			Longname: "app.greet",
			Location: diag.Location{File: "app.js", Line: 12},
			Message:  "type Foo is not documented; using any",
			Hint:     "document the type",
		},
		{Severity: diag.SeverityInfo, Kind: diag.KindUnresolvedType, Message: "no location"},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Severity", "Kind", "Symbol", "Location", "Message"}, rows[0])
	assert.Equal(t, []string{"warning", "unresolved-type", "app.greet", "app.js:12",
		"type Foo is not documented; using any (hint: document the type)"}, rows[1])
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "info", rows[2][0])
}

func TestGenerate_WritesDirectoryOutput(t *testing.T) {
	dir := workspace(t)
	t.Setenv("DTSGEN_OUTPUT_PATH", "types/")

	require.NoError(t, runGenerate(GenerateCmd, []string{"doclets.json"}))

	data, err := os.ReadFile(filepath.Join(dir, "types", "index.d.ts"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "// Code generated by dtsgen. DO NOT EDIT.")
	assert.Contains(t, text, "declare namespace app {")
	assert.Contains(t, text, "greet(who: string): string;")
}

func TestGenerate_Stdout(t *testing.T) {
	workspace(t)
	t.Setenv("DTSGEN_OUTPUT_HEADER", "false")

	var out bytes.Buffer
	GenerateCmd.SetOut(&out)
	t.Cleanup(func() { GenerateCmd.SetOut(nil) })

	require.NoError(t, runGenerate(GenerateCmd, []string{"doclets.json"}))
	assert.NotContains(t, out.String(), "DO NOT EDIT")
	assert.Contains(t, out.String(), "declare namespace app {")
}

func TestGenerate_MissingInput(t *testing.T) {
	workspace(t)

	err := runGenerate(GenerateCmd, []string{"nope.json"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, 2, ExitCode(err))
}

func TestCheck(t *testing.T) {
	dir := workspace(t)
	target := filepath.Join(dir, "app.d.ts")
	t.Setenv("DTSGEN_OUTPUT_PATH", target)

	err := runCheck(CheckCmd, []string{"doclets.json"})
	require.Error(t, err, "missing file is out of date")
	assert.True(t, errors.Is(err, errors.ErrOutOfDate))

	require.NoError(t, runGenerate(GenerateCmd, []string{"doclets.json"}))
	require.NoError(t, runCheck(CheckCmd, []string{"doclets.json"}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(target, append(data, []byte("declare const stale: number;\n")...), 0644))

	err = runCheck(CheckCmd, []string{"doclets.json"})
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestCheck_NothingToCompare(t *testing.T) {
	workspace(t)

	err := runCheck(CheckCmd, []string{"doclets.json"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestTreeItems(t *testing.T) {
	workspace(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	result, err := compile(cfg, []string{"doclets.json"})
	require.NoError(t, err)

	items := treeItems(result.Tree)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, "app (namespace)", items[0].Text)
	assert.Equal(t, 1, items[1].Level)
	assert.Equal(t, "greet (function)", items[1].Text)
}

func TestMarshalConfig(t *testing.T) {
	data, err := marshalConfig(config.Defaults(), "json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"unresolved_types"`)
	assert.Contains(t, string(data), `"index.d.ts"`)

	data, err = marshalConfig(config.Defaults(), "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "filename: index.d.ts")

	_, err = marshalConfig(config.Defaults(), "ini")
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	t.Cleanup(func() { VersionCmd.SetOut(nil) })

	VersionCmd.Run(VersionCmd, nil)
	assert.Contains(t, out.String(), "Platform:")

	out.Reset()
	require.NoError(t, VersionCmd.Flags().Set("json", "true"))
	t.Cleanup(func() { _ = VersionCmd.Flags().Set("json", "false") })

	VersionCmd.Run(VersionCmd, nil)
	assert.Contains(t, out.String(), `"go_version"`)
}
