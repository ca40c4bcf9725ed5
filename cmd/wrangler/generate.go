package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/DeanoC/MessageWrangler-sub001/internal/driver"
	"github.com/DeanoC/MessageWrangler-sub001/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "Compile a definition file and emit code for the selected languages",
	Long: `Generate compiles a .def file together with everything it imports and
writes one output file per selected language into the output directory.
Input and output default to the [generate] section of wrangler.toml when
one is found in a parent directory; flags override the manifest.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("input", "", "root .def file to compile")
	generateCmd.Flags().String("output", "", "output directory (default \".\")")
	generateCmd.Flags().Bool("cpp", false, "emit a C++ header")
	generateCmd.Flags().Bool("ts", false, "emit TypeScript declarations")
	generateCmd.Flags().Bool("py", false, "emit Python dataclasses")
	generateCmd.Flags().Bool("json", false, "emit a JSON Schema document")
	generateCmd.Flags().StringSlice("language", nil,
		"languages to emit (cpp|typescript|python|json|all); overrides the individual flags")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to get input flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	langs, err := cmd.Flags().GetStringSlice("language")
	if err != nil {
		return fmt.Errorf("failed to get language flag: %w", err)
	}

	manifest, haveManifest, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if haveManifest {
		if input == "" {
			input = manifest.manifestInput()
		}
		if output == "" {
			output = manifest.manifestOutput()
		}
		if len(langs) == 0 && !anyLanguageFlag(cmd) {
			langs = manifest.Config.Generate.Languages
		}
	}
	if input == "" {
		return fmt.Errorf("no input: pass --input or set [generate].input in wrangler.toml")
	}
	if output == "" {
		output = "."
	}

	gens, err := selectGenerators(cmd, langs)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	fs := afero.NewOsFs()
	cc := driver.NewContext(fs, opts)
	m, err := cc.Compile(cmd.Context(), input, opts)
	printBag(cmd, cc.Bag, cc.FileSet)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if m == nil {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s: compilation failed", input)
	}

	written, err := generator.WriteAll(fs, output, m, gens, opts.Logger)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}
	return nil
}

func anyLanguageFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"cpp", "ts", "py", "json"} {
		if on, _ := cmd.Flags().GetBool(name); on {
			return true
		}
	}
	return false
}

// selectGenerators resolves the language selection: an explicit
// --language list wins, then the individual flags, then the default
// set of cpp, typescript and json.
func selectGenerators(cmd *cobra.Command, langs []string) ([]generator.Generator, error) {
	if len(langs) > 0 {
		var gens []generator.Generator
		for _, lang := range langs {
			if strings.EqualFold(lang, "all") {
				return generator.All(), nil
			}
			g, ok := generator.ByName(lang)
			if !ok {
				return nil, fmt.Errorf("unknown language %q (cpp|typescript|python|json|all)", lang)
			}
			gens = append(gens, g)
		}
		return gens, nil
	}

	var gens []generator.Generator
	for _, name := range []string{"cpp", "ts", "py", "json"} {
		if on, _ := cmd.Flags().GetBool(name); on {
			g, _ := generator.ByName(name)
			gens = append(gens, g)
		}
	}
	if len(gens) == 0 {
		for _, name := range []string{"cpp", "ts", "json"} {
			g, _ := generator.ByName(name)
			gens = append(gens, g)
		}
	}
	return gens, nil
}
