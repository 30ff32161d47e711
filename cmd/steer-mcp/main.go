// Command steer-mcp runs the steering MCP server over stdio without the rest
// of the CLI, for clients that launch a dedicated binary.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/config"
	"github.com/papapumpkin/steer/internal/engine"
	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/mcpserver"
	"github.com/papapumpkin/steer/internal/scan"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	cacheSize := flag.Int("cache-size", analysis.DefaultCacheSize, "analyses kept in memory")
	cacheMaxAge := flag.Duration("cache-max-age", config.DefaultCacheMaxAge, "age after which a cached analysis is discarded (0 keeps entries until evicted)")
	noRipgrep := flag.Bool("no-ripgrep", false, "always walk the filesystem instead of using rg")
	flag.Parse()

	logger := logging.New(*logLevel, *logFormat, os.Stderr)

	cache, err := analysis.NewCache(*cacheSize, *cacheMaxAge, nil, logger)
	if err != nil {
		logger.WithError(err).Fatal("create cache")
	}
	an := &analysis.Analyzer{
		Scanner: &scan.Scanner{DisableFastSearch: *noRipgrep, Logger: logger},
		Cache:   cache,
		Logger:  logger,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := mcpserver.NewServer(engine.New(an, logger), logger).Run(ctx); err != nil {
		logger.WithError(err).Error("mcp server stopped")
		cancel()
		os.Exit(1)
	}
}
