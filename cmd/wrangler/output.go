package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diagfmt"
	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// useColor resolves the --color flag against the terminal attached to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// driverOptions assembles compilation options from the persistent flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics, Jobs: jobs}
	if verbose {
		log := logrus.New()
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(logrus.DebugLevel)
		opts.Logger = log
	}
	return opts, nil
}

// printBag renders the bag to stderr unless --quiet suppresses
// everything below error severity. Errors always print.
func printBag(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet && !bag.HasErrors() {
		return
	}
	var out io.Writer = cmd.ErrOrStderr()
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
		Context:   2,
	}
	diagfmt.Pretty(out, bag, fs, opts)
}
