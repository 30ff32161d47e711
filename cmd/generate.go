package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/steering"
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate steering documents for a project",
	Long: "Generate deep-analyzes the project and renders steering documents in the\n" +
		"chosen IDE format. Documents are printed to stdout unless --write is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("format", "f", "", "output format (default from config, kiro)")
	generateCmd.Flags().BoolP("write", "w", false, "write documents to disk instead of stdout")
	generateCmd.Flags().StringP("out", "o", "", "directory to write into (default: the project path)")
	generateCmd.Flags().Bool("json", false, "print documents as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	root := projectRoot(args)
	gen, err := a.engine.GenerateSteering(ctx, root, formatFlag(cmd, a))
	if err != nil {
		return err
	}
	for _, d := range gen.Analysis.Diagnostics {
		a.printer.Warn(d.Error())
	}
	return emitDocuments(cmd, a, gen.Documents, outDir(cmd, root))
}

// emitDocuments writes docs to disk with --write, or prints them.
func emitDocuments(cmd *cobra.Command, a *app, docs []steering.Document, dir string) error {
	if write, _ := cmd.Flags().GetBool("write"); write {
		if _, err := writeDocuments(dir, docs); err != nil {
			return err
		}
		a.printer.Documents(docs, dir, true)
		return nil
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := toDocumentsOutput(docs)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	return printDocuments(cmd.OutOrStdout(), docs)
}

func formatFlag(cmd *cobra.Command, a *app) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return a.cfg.Format
}

func outDir(cmd *cobra.Command, root string) string {
	if dir, _ := cmd.Flags().GetString("out"); dir != "" {
		return dir
	}
	return root
}
