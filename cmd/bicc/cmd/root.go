package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bicc [file]",
	Short: "bic to C++ translator",
	Long: `bicc translates .bic source files into paired C++ header and source
files.

bic is a small language whose programs map directly onto C++ classes,
enums and free functions: this translator is a thin
syntax transform, not a general-purpose compiler — it scans, parses, and
re-emits the same program structure in C++ spelling, and stops at the
first error it cannot make sense of.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    compileFile,
}

// newLogger builds a production-config sugared logger, or a development one
// (caller line numbers, uncolored console encoding) under --verbose.
func newLogger() *zap.SugaredLogger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory to write the generated .hpp/.cpp pair into")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
