package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/steering"
)

var customCmd = &cobra.Command{
	Use:   "custom <filename>",
	Short: "Wrap your own markdown as a Kiro steering document",
	Long: "Custom adds inclusion front-matter to caller-supplied content. The content is\n" +
		"read from --content, --content-file, or stdin when --content-file is \"-\".",
	Args: cobra.ExactArgs(1),
	RunE: runCustom,
}

func init() {
	customCmd.Flags().String("content", "", "markdown body")
	customCmd.Flags().String("content-file", "", "file holding the markdown body (- for stdin)")
	customCmd.Flags().StringP("inclusion", "i", string(steering.InclusionAlways), "always, fileMatch or manual")
	customCmd.Flags().StringP("pattern", "p", "", "glob for fileMatch inclusion")
	customCmd.Flags().BoolP("write", "w", false, "write the document to disk instead of stdout")
	customCmd.Flags().StringP("out", "o", ".", "directory to write into")
	customCmd.Flags().Bool("json", false, "print the document as JSON")
	customCmd.MarkFlagsMutuallyExclusive("content", "content-file")
	rootCmd.AddCommand(customCmd)
}

func runCustom(cmd *cobra.Command, args []string) error {
	content, err := customContent(cmd)
	if err != nil {
		return err
	}
	inclusion, _ := cmd.Flags().GetString("inclusion")
	pattern, _ := cmd.Flags().GetString("pattern")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.engine.CreateCustomSteering(args[0], content, inclusion, pattern)
	if err != nil {
		return err
	}
	return emitDocuments(cmd, a, []steering.Document{doc}, outDir(cmd, "."))
}

func customContent(cmd *cobra.Command) (string, error) {
	if c, _ := cmd.Flags().GetString("content"); c != "" {
		return c, nil
	}
	path, _ := cmd.Flags().GetString("content-file")
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read content file: %w", err)
		}
		return string(data), nil
	}
}
