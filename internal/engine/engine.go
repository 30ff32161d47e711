// Package engine exposes the entry points shared by the CLI and the MCP
// server: detection, analysis, steering generation and the catalogues.
package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/steering"
)

// Engine is safe for concurrent use; invocations share only the cache.
type Engine struct {
	analyzer *analysis.Analyzer
	log      logrus.FieldLogger
}

// New returns an engine over an. A nil analyzer uses default scanning with
// no cache.
func New(an *analysis.Analyzer, logger logrus.FieldLogger) *Engine {
	if an == nil {
		an = &analysis.Analyzer{Logger: logger}
	}
	return &Engine{analyzer: an, log: logging.OrDiscard(logger)}
}

// Generation is the result of one steering generation.
type Generation struct {
	Format    steering.Format
	Analysis  *analysis.ProjectAnalysis
	Documents []steering.Document
}

// DetectFramework classifies the project at root.
func (e *Engine) DetectFramework(ctx context.Context, root string) (framework.Info, error) {
	return e.analyzer.DetectFramework(ctx, root)
}

// Analyze runs the basic analysis.
func (e *Engine) Analyze(ctx context.Context, root string) (*analysis.ProjectAnalysis, error) {
	return e.analyzer.Analyze(ctx, root)
}

// DeepAnalyze runs every analysis stage.
func (e *Engine) DeepAnalyze(ctx context.Context, root string) (*analysis.ProjectAnalysis, error) {
	return e.analyzer.DeepAnalyze(ctx, root)
}

// GenerateSteering validates format, deep-analyzes root and renders. An
// unsupported format fails before any scanning.
func (e *Engine) GenerateSteering(ctx context.Context, root, format string) (*Generation, error) {
	f, err := steering.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	a, err := e.analyzer.DeepAnalyze(ctx, root)
	if err != nil {
		return nil, err
	}
	docs, err := steering.Render(a, f)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"root":      a.Root,
		"format":    f,
		"framework": a.Framework.Name,
		"documents": len(docs),
	}).Info("steering generated")
	return &Generation{Format: f, Analysis: a, Documents: docs}, nil
}

// CreateCustomSteering wraps caller content without analyzing anything.
func (e *Engine) CreateCustomSteering(filename, content, inclusion, pattern string) (steering.Document, error) {
	return steering.CreateCustom(filename, content, inclusion, pattern)
}

// SteeringTemplate returns a built-in template document.
func (e *Engine) SteeringTemplate(kind string) (steering.Document, error) {
	return steering.Template(kind)
}

// SupportedFrameworks lists the detectable frameworks.
func (e *Engine) SupportedFrameworks() []framework.Descriptor {
	return framework.Supported()
}

// SupportedIDEs lists the output targets.
func (e *Engine) SupportedIDEs() []steering.IDE {
	return steering.SupportedIDEs()
}
