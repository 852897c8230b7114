// PepSeq - Cyclopeptide sequencing from integer mass spectra
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/PepSeq/cmd/pepseq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
