package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
)

var graphCmd = &cobra.Command{
	Use:   "graph [flags]",
	Short: "Print the import closure in dependency order",
	Long: `Graph loads a .def file and everything it imports, then prints the
canonical file paths in dependency order, dependencies first. Import
cycles and missing imports are reported as diagnostics.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().String("input", "", "root .def file to load")
}

func runGraph(cmd *cobra.Command, args []string) error {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	if input == "" {
		if manifest, ok, err := loadProjectManifest("."); err != nil {
			return err
		} else if ok {
			input = manifest.manifestInput()
		}
	}
	if input == "" {
		return fmt.Errorf("no input: pass --input or set [generate].input in wrangler.toml")
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	cc := driver.NewContext(afero.NewOsFs(), opts)
	paths, err := cc.Graph(cmd.Context(), input, opts)
	printBag(cmd, cc.Bag, cc.FileSet)
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if cc.Bag.HasErrors() {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s: import graph has errors", input)
	}
	return nil
}
