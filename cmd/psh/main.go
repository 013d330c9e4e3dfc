// Command psh is a small demonstration shell around the kernel package: it
// boots an in-memory kernel, runs a fixed demo process tree through it, and
// reports on the result the way xv6's ps, psinfo, set and exectime user
// programs report on a live system.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := setupCLI()
	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// setupCLI constructs the cobra hierarchy for psh.
func setupCLI() *cobra.Command {
	rootCmd.AddCommand(bootCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(psinfoCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(exectimeCmd)
	return rootCmd
}
