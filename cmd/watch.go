package cmd

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/steering"
	"github.com/papapumpkin/steer/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Regenerate steering documents whenever the project changes",
	Long: "Watch writes steering documents once, then rewrites them after each burst of\n" +
		"file changes. Generated output paths are ignored so writes do not retrigger.",
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("format", "f", "", "output format (default from config, kiro)")
	watchCmd.Flags().StringP("out", "o", "", "directory to write into (default: the project path)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	root := projectRoot(args)
	format := formatFlag(cmd, a)
	if _, err := steering.ParseFormat(format); err != nil {
		return err
	}
	dir := outDir(cmd, root)

	regenerate := func(ctx context.Context, _ watch.Batch) error {
		gen, err := a.engine.GenerateSteering(ctx, root, format)
		if err != nil {
			return err
		}
		if _, err := writeDocuments(dir, gen.Documents); err != nil {
			return err
		}
		a.printer.Documents(gen.Documents, dir, true)
		return nil
	}
	if err := regenerate(ctx, watch.Batch{}); err != nil {
		return err
	}

	ignore := a.cfg.IgnoreRules().With(outputGlobs()...)
	debounce, _ := cmd.Flags().GetDuration("debounce")
	w, err := watch.NewWatcher(root, watch.Options{
		Ignore:   &ignore,
		Debounce: debounce,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}
	a.log.WithField("root", w.Root).Info("watching for changes")
	return watch.Run(ctx, w, regenerate)
}

// outputGlobs lists every path steer writes, so the watcher skips them.
func outputGlobs() []string {
	paths := steering.IDEPaths()
	globs := make([]string, 0, len(paths))
	for _, p := range paths {
		globs = append(globs, p)
	}
	sort.Strings(globs)
	return globs
}
