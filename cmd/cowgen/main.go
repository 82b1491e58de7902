// Command cowgen generates copy-on-write mutation contracts and client
// views from YAML entity schemas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cowgen:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cowgen",
		Short:         "Schema-driven generator for copy-on-write mutation contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(generateCmd())
	return cmd
}
