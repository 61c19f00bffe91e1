// Command cdimage inspects CD-ROM disc images (CUE/BIN and ISO).
package main

import (
	"fmt"
	"os"

	"github.com/sargunv/cdimage/internal/cli/browse"
	"github.com/sargunv/cdimage/internal/cli/dump"
	"github.com/sargunv/cdimage/internal/cli/identify"
	"github.com/sargunv/cdimage/internal/cli/toc"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cdimage",
	Short: "Inspect CD-ROM disc images (CUE/BIN and ISO)",
}

func init() {
	rootCmd.AddCommand(toc.Cmd)
	rootCmd.AddCommand(dump.Cmd)
	rootCmd.AddCommand(identify.Cmd)
	rootCmd.AddCommand(browse.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
