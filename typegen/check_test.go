package typegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dtsgen/errors"
)

func TestFilterMetadataLines(t *testing.T) {
	input := `// Code generated by dtsgen. DO NOT EDIT.
// Generator version: 1.2.3

declare let x: string;
`
	expected := `// Code generated by dtsgen. DO NOT EDIT.

declare let x: string;
`
	assert.Equal(t, expected, filterMetadataLines([]byte(input)))
}

func TestCheckFileLongLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.d.ts")
	long := "declare const big: '" + strings.Repeat("a", 128*1024) + "';\n"
	require.NoError(t, os.WriteFile(path, []byte(long+"declare let x: string;\n"), 0644))

	result, err := CheckFile(long+"declare let x: number;\n", path)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, 2, result.Line)

	result, err = CheckFile(long+"declare let x: string;\n", path)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.d.ts")

	existing := GeneratedHeader + "\n// Generator version: abc1234\n\ndeclare let x: string;\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	t.Run("only version differs", func(t *testing.T) {
		generated := GeneratedHeader + "\n// Generator version: 2.0.0\n\ndeclare let x: string;\n"
		result, err := CheckFile(generated, path)
		require.NoError(t, err)
		assert.True(t, result.UpToDate)
		assert.NoError(t, result.Err())
	})

	t.Run("declarations differ", func(t *testing.T) {
		generated := GeneratedHeader + "\n// Generator version: 2.0.0\n\ndeclare let x: number;\n"
		result, err := CheckFile(generated, path)
		require.NoError(t, err)
		assert.False(t, result.UpToDate)
		assert.Equal(t, 3, result.Line)
		assert.Equal(t, "declare let x: number;", result.Want)
		assert.Equal(t, "declare let x: string;", result.Got)

		err = result.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrOutOfDate))
	})

	t.Run("generated is longer", func(t *testing.T) {
		generated := existing + "declare let y: number;\n"
		result, err := CheckFile(generated, path)
		require.NoError(t, err)
		assert.False(t, result.UpToDate)
		assert.Equal(t, 4, result.Line)
	})
}

func TestCheckFileMissing(t *testing.T) {
	result, err := CheckFile("declare let x: string;\n", filepath.Join(t.TempDir(), "missing.d.ts"))
	require.NoError(t, err)
	assert.True(t, result.Missing)
	assert.False(t, result.UpToDate)
	assert.True(t, errors.Is(result.Err(), errors.ErrOutOfDate))
}
