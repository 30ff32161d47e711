package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: "Serve exposes detection, analysis and steering generation as Model Context\n" +
		"Protocol tools on stdin/stdout. Logs go to stderr.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return mcpserver.NewServer(a.engine, a.log).Run(ctx)
}
