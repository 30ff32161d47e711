package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/steer/internal/steering"
)

// generateInput is the input schema for generate_steering.
type generateInput struct {
	ProjectPath  string `json:"project_path" jsonschema:"Absolute or relative path to the project root"`
	OutputFormat string `json:"output_format,omitempty" jsonschema:"One of kiro, cursor, copilot, windsurf, cline, aider, markdown (default kiro)"`
}

// documentOutput is one rendered file.
type documentOutput struct {
	Path             string `json:"path"`
	Content          string `json:"content"`
	Inclusion        string `json:"inclusion,omitempty"`
	FileMatchPattern string `json:"fileMatchPattern,omitempty"`
}

func toDocumentOutput(d steering.Document) documentOutput {
	out := documentOutput{Path: d.Path, Content: d.String()}
	if d.FrontMatter != nil && d.FrontMatter.Inclusion != nil {
		out.Inclusion = string(d.FrontMatter.Inclusion.Mode())
		out.FileMatchPattern = d.FrontMatter.Inclusion.Pattern()
	}
	return out
}

// generateSummary counts what the analysis found.
type generateSummary struct {
	Dependencies int `json:"dependencies"`
	Entities     int `json:"entities"`
	StatusEnums  int `json:"statusEnums"`
	Components   int `json:"components"`
	EnvVars      int `json:"envVars"`
	Diagnostics  int `json:"diagnostics"`
}

// generateOutput is the output schema for generate_steering.
type generateOutput struct {
	Framework    string           `json:"framework"`
	OutputFormat string           `json:"outputFormat"`
	Files        []documentOutput `json:"files"`
	Summary      generateSummary  `json:"summary"`
}

// customInput is the input schema for create_custom_steering.
type customInput struct {
	Filename         string `json:"filename" jsonschema:"File name under .kiro/steering/; .md is appended when missing"`
	Content          string `json:"content" jsonschema:"Markdown body; #[[file:path]] references are kept verbatim"`
	Inclusion        string `json:"inclusion,omitempty" jsonschema:"always (default), fileMatch or manual"`
	FileMatchPattern string `json:"file_match_pattern,omitempty" jsonschema:"Glob required for fileMatch, e.g. app/api/**/*"`
}

// templateInput is the input schema for get_steering_template.
type templateInput struct {
	TemplateType string `json:"template_type" jsonschema:"One of api, testing, security, code-style, deployment, components"`
}

func (s *Server) registerSteeringTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "generate_steering",
		Description: "Generate steering documentation for a codebase in the requested IDE format",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
		if input.ProjectPath == "" {
			return nil, generateOutput{}, fmt.Errorf("project_path is required")
		}
		format := input.OutputFormat
		if format == "" {
			format = string(steering.Kiro)
		}
		gen, err := s.engine.GenerateSteering(ctx, input.ProjectPath, format)
		if err != nil {
			return nil, generateOutput{}, err
		}

		a := gen.Analysis
		out := generateOutput{
			Framework:    string(a.Framework.Name),
			OutputFormat: string(gen.Format),
			Files:        make([]documentOutput, 0, len(gen.Documents)),
			Summary: generateSummary{
				Dependencies: a.Dependencies.Len(),
				Entities:     len(a.Entities),
				StatusEnums:  len(a.StatusEnums),
				Components:   len(a.Components),
				EnvVars:      len(a.EnvVars),
				Diagnostics:  len(a.Diagnostics),
			},
		}
		for _, d := range gen.Documents {
			out.Files = append(out.Files, toDocumentOutput(d))
		}
		return nil, out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_custom_steering",
		Description: "Wrap caller-supplied content in Kiro steering front-matter without analyzing a project",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input customInput) (*mcp.CallToolResult, documentOutput, error) {
		d, err := s.engine.CreateCustomSteering(input.Filename, input.Content, input.Inclusion, input.FileMatchPattern)
		if err != nil {
			return nil, documentOutput{}, err
		}
		return nil, toDocumentOutput(d), nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_steering_template",
		Description: "Return a built-in steering template document",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input templateInput) (*mcp.CallToolResult, documentOutput, error) {
		if input.TemplateType == "" {
			return nil, documentOutput{}, fmt.Errorf("template_type is required")
		}
		d, err := s.engine.SteeringTemplate(input.TemplateType)
		if err != nil {
			return nil, documentOutput{}, err
		}
		return nil, toDocumentOutput(d), nil
	})
}
