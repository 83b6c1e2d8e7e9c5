package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bindgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "C# binding generator for native binaries",
	Long:  `bindgen reads export descriptors out of compiled native binaries and generates type-safe C# wrappers plus the project file that packages them`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
