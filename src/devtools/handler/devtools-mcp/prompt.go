package devtoolsmcp

import (
	"context"
	_ "embed"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GuidancePrompt explains to the model how the tools fit together. It is also sent as the server instructions.
//
//go:embed guidance_prompt.md
var GuidancePrompt string

var guidancePrompt = mcp.NewPrompt("rust_development_guidance",
	mcp.WithPromptDescription("Comprehensive guidance for Rust development using rust-devtools-mcp"),
)

func (h *handler) Prompts() []server.ServerPrompt {
	return []server.ServerPrompt{
		{Prompt: guidancePrompt, Handler: h.guidance},
	}
}

func (h *handler) guidance(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"Guidance for using the Rust development tools effectively",
		[]mcp.PromptMessage{mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(GuidancePrompt))},
	), nil
}
