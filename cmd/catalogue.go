package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/deps"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/steering"
	"github.com/papapumpkin/steer/internal/ui"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the frameworks steer can detect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := framework.Supported()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		ui.New(cmd.OutOrStdout()).Frameworks(list, deps.ManifestNames())
		return nil
	},
}

var idesCmd = &cobra.Command{
	Use:   "ides",
	Short: "List the IDE output formats and where their files go",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := steering.SupportedIDEs()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		ui.New(cmd.OutOrStdout()).IDEs(list)
		return nil
	},
}

func init() {
	frameworksCmd.Flags().Bool("json", false, "print as JSON")
	idesCmd.Flags().Bool("json", false, "print as JSON")
	rootCmd.AddCommand(frameworksCmd, idesCmd)
}
