package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.def",
	Short: "Compile a definition file for diagnostics only",
	Long: `Check compiles a .def file and its imports without generating code.
Clean results are cached under the user cache directory, keyed by the
content of the root file and its dependency closure.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-cache", false, "always recompile, ignoring the check cache")
	checkCmd.Flags().Bool("drop-cache", false, "clear every cached check result first")
}

func runCheck(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}

	var cache *driver.CheckCache
	if !noCache {
		// Cache failures degrade to a plain recompile.
		cache, _ = driver.OpenCheckCache("wrangler")
	}
	if dropCache && cache != nil {
		if err := cache.DropAll(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to drop check cache: %v\n", err)
		}
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	cc := driver.NewContext(afero.NewOsFs(), opts)
	ok, err := cc.Check(cmd.Context(), args[0], opts, cache)
	printBag(cmd, cc.Bag, cc.FileSet)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if !ok {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s: check failed", args[0])
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	}
	return nil
}
