package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AppliedIntuition/rules-python/internal/config"
	"github.com/AppliedIntuition/rules-python/internal/extractor"
	"github.com/AppliedIntuition/rules-python/internal/manifest"
	"github.com/AppliedIntuition/rules-python/internal/namespace"
	"github.com/AppliedIntuition/rules-python/internal/pkgpath"
	"github.com/AppliedIntuition/rules-python/internal/resolver"
	"github.com/AppliedIntuition/rules-python/internal/wheel"
)

var (
	whlPath      string
	requirements string
	directory    string
	extras       []string
	configPath   string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "whltool",
		Short: "Unpack a .whl file as a py_library",
		Long:  "whltool expands a Python wheel into a directory, repairs implicit namespace packages, and writes a BUILD file wiring up the wheel's resolved dependencies.",
		RunE:  runUnpack,
	}

	rootCmd.Flags().StringVar(&whlPath, "whl", "", "The .whl file to expand")
	rootCmd.Flags().StringVar(&requirements, "requirements", "", "The pip_import label from which to draw dependencies")
	rootCmd.Flags().StringVar(&directory, "directory", ".", "The directory into which to expand things")
	rootCmd.Flags().StringArrayVar(&extras, "extras", nil, "The set of extras for which to generate library targets")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Optional config file (.toml or .yaml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.MarkFlagRequired("whl")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUnpack(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	eval, err := cfg.Evaluator()
	if err != nil {
		return err
	}

	whl := wheel.New(whlPath)
	repo, err := whl.RepositoryName()
	if err != nil {
		return err
	}
	logger.Debug("expanding wheel", "whl", whl.Basename(), "repository", repo)

	// Extract the files into the target directory.
	names, err := extractor.Extract(whl.Path(), directory)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", whl.Basename(), err)
	}
	logger.Debug("extracted archive", "entries", len(names))

	// Repair implicit namespace packages before anything reads the tree.
	if err := namespace.Repair(directory, names, cfg.RewriteSet()); err != nil {
		return fmt.Errorf("repairing namespaces: %w", err)
	}

	name, err := whl.Name()
	if err != nil {
		return fmt.Errorf("reading metadata from %s: %w", whl.Basename(), err)
	}

	importPath, err := pkgpath.Locate(directory, name)
	if err != nil {
		return fmt.Errorf("locating package %s: %w", name, err)
	}
	logger.Debug("located package root", "package", name, "import_path", importPath)

	meta, err := whl.Metadata()
	if err != nil {
		return err
	}
	res := resolver.NewResolver(eval, logger)
	deps, err := res.Dependencies(meta, "")
	if err != nil {
		return fmt.Errorf("resolving dependencies: %w", err)
	}

	m := &manifest.Manifest{
		RepositoryName:    repo,
		ImportPath:        importPath,
		RequirementsLabel: requirements,
		Deps:              deps,
	}
	for _, extra := range extras {
		extraDeps, err := res.Dependencies(meta, extra)
		if err != nil {
			return fmt.Errorf("resolving extra %q: %w", extra, err)
		}
		m.Extras = append(m.Extras, manifest.ExtraDeps{Name: extra, Deps: extraDeps})
	}

	buildPath := filepath.Join(directory, "BUILD")
	out, err := os.Create(buildPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", buildPath, err)
	}
	defer out.Close()

	if err := manifest.NewEmitter(out).Emit(m); err != nil {
		return fmt.Errorf("writing %s: %w", buildPath, err)
	}

	logger.Info("unpacked wheel", "repository", repo, "deps", len(deps), "extras", len(m.Extras))
	return nil
}
