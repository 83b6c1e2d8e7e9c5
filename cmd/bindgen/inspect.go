package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bindgen/internal/driver"
	"bindgen/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <binary>",
	Short: "Print the export descriptors of a native binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorize, err := colorizeFor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		quiet, err := cmd.Flags().GetBool("quiet")
		if err != nil {
			return err
		}

		exports, err := driver.Extract(args[0])
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.DescriptorTable(exports, colorize))
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d exports\n", len(exports))
		}
		return nil
	},
}
