package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diagfmt"
	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.def",
	Short: "Tokenize a definition file",
	Long:  `Tokenize breaks down a definition file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	fileSet, toks, bag, err := driver.Tokenize(afero.NewOsFs(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if bag.HasErrors() || bag.HasWarnings() {
		prettyOpts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fileSet, prettyOpts)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
