package cmd

import (
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Detect the framework a project is built with",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	info, err := a.engine.DetectFramework(ctx, projectRoot(args))
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), info)
	}
	a.printer.Framework(info)
	return nil
}
