package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/config"
	"github.com/papapumpkin/steer/internal/engine"
	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/scan"
	"github.com/papapumpkin/steer/internal/ui"
)

// app bundles everything a command needs once config is loaded.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	engine  *engine.Engine
	cache   *analysis.Cache
	printer *ui.Printer
}

// newApp loads config and builds the scanner, cache and engine. Logs and
// human-readable output go to the command's stderr.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel(), cfg.Log.Format, cmd.ErrOrStderr())

	scanner := &scan.Scanner{
		MaxFileSize:       cfg.MaxFileSize,
		Ignore:            cfg.IgnoreRules(),
		RipgrepPath:       cfg.RipgrepPath,
		DisableFastSearch: !cfg.UseRipgrep,
		Logger:            logger,
	}
	an := &analysis.Analyzer{Scanner: scanner, Logger: logger}

	a := &app{
		cfg:     cfg,
		log:     logger,
		printer: ui.New(cmd.ErrOrStderr()),
	}
	if cfg.Cache.Enabled {
		cache, err := openCache(cmd.Context(), cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		a.cache = cache
		an.Cache = cache
	}
	a.engine = engine.New(an, logger)
	return a, nil
}

func openCache(ctx context.Context, cc config.CacheConfig, logger logrus.FieldLogger) (*analysis.Cache, error) {
	var store analysis.Store
	if cc.Path != "" {
		s, err := analysis.OpenSQLiteStore(ctx, cc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		if cc.MaxAge > 0 {
			n, err := s.Prune(ctx, time.Now().Add(-cc.MaxAge))
			if err != nil {
				logger.WithError(err).Warn("cache prune failed")
			} else if n > 0 {
				logger.WithField("entries", n).Debug("pruned stale cache entries")
			}
		}
		store = s
	}
	cache, err := analysis.NewCache(cc.Size, cc.MaxAge, store, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return cache, nil
}

func (a *app) Close() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.log.WithError(err).Warn("closing cache")
	}
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// projectRoot returns the optional path argument, defaulting to the cwd.
func projectRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
