package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/steering"
)

var templateCmd = &cobra.Command{
	Use:       "template <kind>",
	Short:     "Print a starter steering template",
	Long:      "Template prints one of the built-in starter documents: " + kindList() + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runTemplate,
}

func init() {
	templateCmd.Flags().BoolP("write", "w", false, "write the template to disk instead of stdout")
	templateCmd.Flags().StringP("out", "o", ".", "directory to write into")
	templateCmd.Flags().Bool("json", false, "print the template as JSON")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.engine.SteeringTemplate(args[0])
	if err != nil {
		return err
	}
	return emitDocuments(cmd, a, []steering.Document{doc}, outDir(cmd, "."))
}

func kindNames() []string {
	kinds := steering.TemplateKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func kindList() string {
	return strings.Join(kindNames(), ", ")
}
