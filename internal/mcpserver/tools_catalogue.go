package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/steering"
)

type emptyInput struct{}

type frameworksOutput struct {
	Frameworks []framework.Descriptor `json:"frameworks"`
}

type idesOutput struct {
	IDEs []steering.IDE `json:"ides"`
}

func (s *Server) registerCatalogueTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_supported_frameworks",
		Description: "List the supported frameworks and their detection signatures",
	}, func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, frameworksOutput, error) {
		return nil, frameworksOutput{Frameworks: s.engine.SupportedFrameworks()}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_supported_ides",
		Description: "List the supported IDEs and where their steering files are written",
	}, func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, idesOutput, error) {
		return nil, idesOutput{IDEs: s.engine.SupportedIDEs()}, nil
	})
}
