// Command bicc compiles .bic source files into paired C++ header/source
// files.
package main

import (
	"fmt"
	"os"

	"github.com/darilrt/bicc/cmd/bicc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
