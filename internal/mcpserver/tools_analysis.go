package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/framework"
)

// projectInput is the input schema for tools that take only a project.
type projectInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Absolute or relative path to the project root"`
}

// detectOutput is the output schema for detect_project_framework.
type detectOutput struct {
	Framework   framework.Info `json:"framework"`
	DisplayName string         `json:"displayName"`
	Supported   bool           `json:"supported"`
}

func (s *Server) registerAnalysisTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "detect_project_framework",
		Description: "Detect the framework used in a project directory",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input projectInput) (*mcp.CallToolResult, detectOutput, error) {
		if input.ProjectPath == "" {
			return nil, detectOutput{}, fmt.Errorf("project_path is required")
		}
		info, err := s.engine.DetectFramework(ctx, input.ProjectPath)
		if err != nil {
			return nil, detectOutput{}, err
		}
		return nil, detectOutput{
			Framework:   info,
			DisplayName: framework.DisplayName(info),
			Supported:   info.Known(),
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_project",
		Description: "Analyze a codebase: framework, categorized dependencies, scripts, environment variables, components",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input projectInput) (*mcp.CallToolResult, analysis.ProjectAnalysis, error) {
		return s.analyze(ctx, input, analysis.Basic)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "deep_analyze_project",
		Description: "Deep analysis adding architecture patterns, entities, status enums and README summary",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input projectInput) (*mcp.CallToolResult, analysis.ProjectAnalysis, error) {
		return s.analyze(ctx, input, analysis.Deep)
	})
}

func (s *Server) analyze(ctx context.Context, input projectInput, depth analysis.Depth) (*mcp.CallToolResult, analysis.ProjectAnalysis, error) {
	if input.ProjectPath == "" {
		return nil, analysis.ProjectAnalysis{}, fmt.Errorf("project_path is required")
	}
	run := s.engine.Analyze
	if depth == analysis.Deep {
		run = s.engine.DeepAnalyze
	}
	a, err := run(ctx, input.ProjectPath)
	if err != nil {
		return nil, analysis.ProjectAnalysis{}, err
	}
	return nil, *a, nil
}
