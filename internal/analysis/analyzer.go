package analysis

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/scan"
)

// Analyzer runs one scan per invocation and builds an analysis from it. It
// holds no per-invocation state; concurrent calls are independent.
type Analyzer struct {
	Scanner *scan.Scanner
	// Cache is optional.
	Cache  *Cache
	Logger logrus.FieldLogger
}

func (a *Analyzer) scanner() *scan.Scanner {
	if a.Scanner != nil {
		return a.Scanner
	}
	return &scan.Scanner{Logger: a.Logger}
}

// DetectFramework scans root and classifies it.
func (a *Analyzer) DetectFramework(ctx context.Context, root string) (framework.Info, error) {
	res, err := a.scanner().Scan(ctx, root)
	if err != nil {
		return framework.Info{}, err
	}
	return framework.Detect(res), nil
}

// Analyze runs the basic stages.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*ProjectAnalysis, error) {
	return a.Run(ctx, root, Basic)
}

// DeepAnalyze runs every stage.
func (a *Analyzer) DeepAnalyze(ctx context.Context, root string) (*ProjectAnalysis, error) {
	return a.Run(ctx, root, Deep)
}

// Run scans root and builds an analysis at depth, consulting the cache when
// one is configured. Either a complete analysis or an error is returned.
func (a *Analyzer) Run(ctx context.Context, root string, depth Depth) (*ProjectAnalysis, error) {
	log := logging.OrDiscard(a.Logger)

	res, err := a.scanner().Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := CacheKey(res.Root, depth, res.Fingerprint)
	if a.Cache != nil {
		if cached, ok := a.Cache.Get(ctx, key); ok {
			log.WithFields(logrus.Fields{"root": res.Root, "depth": depth}).Debug("analysis cache hit")
			return cached, nil
		}
	}

	pa := Build(res, depth)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"root":      pa.Root,
		"framework": pa.Framework.Name,
		"depth":     depth,
		"deps":      pa.Dependencies.Len(),
		"entities":  len(pa.Entities),
	}
	for _, d := range pa.Diagnostics {
		log.WithField("manifest", d.Path).Warn(d.Message)
	}
	log.WithFields(fields).Debug("analysis complete")

	if a.Cache != nil {
		if err := a.Cache.Put(ctx, key, pa); err != nil {
			log.WithError(err).Warn("analysis cache write failed")
		}
	}
	return pa, nil
}
