package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileFileWritesHeaderAndSource(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "point.bic")
	require.NoError(t, os.WriteFile(inputPath, []byte(
		`class Point { mut x : int; Point(x : int) { .x = x; } };`,
	), 0644))

	outputDir = dir
	verbose = false

	require.NoError(t, compileFile(rootCmd, []string{inputPath}))

	header, err := os.ReadFile(filepath.Join(dir, "point.hpp"))
	require.NoError(t, err)
	require.Contains(t, string(header), "class Point")

	source, err := os.ReadFile(filepath.Join(dir, "point.cpp"))
	require.NoError(t, err)
	require.Contains(t, string(source), `#include "point.hpp"`)
}

func TestCompileFileMissingInputIsAnError(t *testing.T) {
	outputDir = t.TempDir()
	verbose = false

	err := compileFile(rootCmd, []string{filepath.Join(t.TempDir(), "missing.bic")})
	require.Error(t, err)
}
