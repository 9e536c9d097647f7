package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/config"
)

// ValidateInput is empty: the validate tool takes no arguments.
type ValidateInput struct{}

// NewValidateHandler creates the validate tool handler. It returns the
// configured caller-identifying number so the calling platform can confirm
// the deployment belongs to the operator.
func NewValidateHandler(cfg *config.Config) mcp.ToolHandlerFor[ValidateInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (
		*mcp.CallToolResult, any, error,
	) {
		return TextResult(cfg.MyNumber), nil, nil
	}
}
