package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bindgen/internal/diag"
	"bindgen/internal/driver"
	"bindgen/internal/project"
)

var (
	generateOut       string
	generateLibrary   string
	generateNamespace string
	generateClass     string
	generateFramework string
	generateFormat    bool
	generateJobs      int
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output directory (default \"bindings\")")
	generateCmd.Flags().StringVar(&generateLibrary, "library", "", "native library name for DllImport (default: binary base name)")
	generateCmd.Flags().StringVar(&generateNamespace, "namespace", "", "namespace of the generated bindings")
	generateCmd.Flags().StringVar(&generateClass, "class", "", "name of the generated static class")
	generateCmd.Flags().StringVar(&generateFramework, "framework", "", "TargetFramework of the generated project")
	generateCmd.Flags().BoolVar(&generateFormat, "format", true, "run the token formatter over the generated source")
	generateCmd.Flags().IntVar(&generateJobs, "jobs", 0, "parallel binary loads (0 = GOMAXPROCS)")
}

var generateCmd = &cobra.Command{
	Use:   "generate [platform=path ...]",
	Short: "Generate C# bindings from native binaries",
	Long: `Generate extracts the export descriptors of every given binary, checks
that all platforms agree, and writes the bindings source plus a csproj.
Binaries come from the arguments (as platform=path pairs) or, when no
arguments are given, from the [[binary]] entries of bindgen.toml.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	colorize, err := colorizeFor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	opts, err := assembleOptions(cmd, args)
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	res, genErr := driver.Generate(cmd.Context(), opts, bag.Reporter())

	bag.Sort()
	diag.Print(os.Stderr, bag.Items(), colorize)
	if genErr != nil {
		return fmt.Errorf("generation failed")
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.SourcePath)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.ProjectPath)
	}
	return nil
}

// assembleOptions merges bindgen.toml with the command line; flags win.
func assembleOptions(cmd *cobra.Command, args []string) (driver.Options, error) {
	opts := driver.Options{
		Library:     generateLibrary,
		Namespace:   generateNamespace,
		Class:       generateClass,
		Framework:   generateFramework,
		AllowUnsafe: true,
		Format:      generateFormat,
		OutDir:      generateOut,
		Jobs:        generateJobs,
	}

	manifest, found, err := project.LoadManifest(".")
	if err != nil {
		return driver.Options{}, err
	}
	if found {
		cfg := manifest.Config
		if opts.Library == "" {
			opts.Library = cfg.Package.Name
		}
		if opts.Namespace == "" {
			opts.Namespace = cfg.Package.Namespace
		}
		if opts.Class == "" {
			opts.Class = cfg.Package.Class
		}
		if opts.Framework == "" {
			opts.Framework = cfg.Output.Framework
		}
		opts.AllowUnsafe = cfg.Output.AllowUnsafe
		if !cmd.Flags().Changed("format") {
			opts.Format = cfg.Output.Format
		}
		if len(args) == 0 {
			for _, bin := range cfg.Binaries {
				platform, err := project.ParsePlatform(bin.Platform)
				if err != nil {
					return driver.Options{}, err
				}
				path := bin.Path
				if !filepath.IsAbs(path) {
					path = filepath.Join(manifest.Root, path)
				}
				opts.Binaries = append(opts.Binaries, driver.Binary{Platform: platform, Path: path})
			}
		}
	}

	for _, arg := range args {
		bin, err := parseBinaryArg(arg)
		if err != nil {
			return driver.Options{}, err
		}
		opts.Binaries = append(opts.Binaries, bin)
	}

	if len(opts.Binaries) == 0 {
		return driver.Options{}, fmt.Errorf("no binaries given (pass platform=path arguments or add [[binary]] entries to bindgen.toml)")
	}
	if opts.Framework == "" {
		opts.Framework = "net8.0"
	}
	if opts.OutDir == "" {
		opts.OutDir = "bindings"
	}
	return opts, nil
}

// parseBinaryArg reads one platform=path pair; a bare path defaults to
// the host-ish linux-x64.
func parseBinaryArg(arg string) (driver.Binary, error) {
	rid, path, ok := strings.Cut(arg, "=")
	if !ok {
		return driver.Binary{Platform: project.PlatformLinuxX64, Path: arg}, nil
	}
	platform, err := project.ParsePlatform(rid)
	if err != nil {
		return driver.Binary{}, fmt.Errorf("argument %q: %w", arg, err)
	}
	if path == "" {
		return driver.Binary{}, fmt.Errorf("argument %q: missing path", arg)
	}
	return driver.Binary{Platform: platform, Path: path}, nil
}
