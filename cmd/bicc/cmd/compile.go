package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/darilrt/bicc/internal/bicerr"
	"github.com/darilrt/bicc/internal/emitter"
	"github.com/darilrt/bicc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	verbose   bool
)

// compileFile runs the read -> scan/parse -> emit -> write pipeline for one
// .bic file. Any scanner, parser, or emitter error is fatal: it is formatted
// by internal/bicerr and ends the process with a non-zero status.
func compileFile(_ *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync() //nolint:errcheck

	inputFile := args[0]
	log.Debugw("reading source", "file", inputFile)

	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputFile, err)
	}
	source := string(src)

	log.Infow("parsing", "file", inputFile)
	prog, err := parser.New(source).Parse()
	if err != nil {
		if pe, ok := err.(bicerr.Positioned); ok {
			bicerr.Exit(pe, source, inputFile)
		}
		return err
	}

	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	headerName := stem + ".hpp"
	sourceName := stem + ".cpp"

	log.Infow("emitting", "file", inputFile)
	result, err := emitter.New().Emit(prog, headerName)
	if err != nil {
		if ee, ok := err.(bicerr.Positioned); ok {
			bicerr.Exit(ee, source, inputFile)
		}
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	headerPath := filepath.Join(outputDir, headerName)
	sourcePath := filepath.Join(outputDir, sourceName)

	log.Debugw("writing output", "header", headerPath, "source", sourcePath)

	if err := os.WriteFile(headerPath, []byte(result.Header), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", headerPath, err)
	}
	if err := os.WriteFile(sourcePath, []byte(result.Source), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sourcePath, err)
	}

	fmt.Printf("Compiled %s -> %s, %s\n", inputFile, headerPath, sourcePath)
	return nil
}
