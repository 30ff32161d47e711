package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project's framework, dependencies and structure",
	Long: "Analyze scans the project and reports framework, dependencies, scripts and\n" +
		"environment variables. With --deep it also infers architecture patterns,\n" +
		"components and data entities.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("deep", false, "include patterns, components and entities")
	analyzeCmd.Flags().Bool("json", false, "print the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	root := projectRoot(args)
	var result *analysis.ProjectAnalysis
	if deep, _ := cmd.Flags().GetBool("deep"); deep {
		result, err = a.engine.DeepAnalyze(ctx, root)
	} else {
		result, err = a.engine.Analyze(ctx, root)
	}
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	ui.New(cmd.OutOrStdout()).Analysis(result)
	return nil
}
