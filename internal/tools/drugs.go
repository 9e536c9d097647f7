package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/openfda"
)

// notSpecified is rendered for openfda fields the label does not carry.
const notSpecified = "Not specified"

// SearchDrugsInput defines the input schema for the search_drugs tool.
type SearchDrugsInput struct {
	Query string `json:"query" jsonschema:"required,Drug name to search for (brand name or generic name)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of results to return (1-50, default 10)"`
}

// NewSearchDrugsHandler creates the search_drugs tool handler.
func NewSearchDrugsHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchDrugsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDrugsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a drug name"), nil, nil
		}

		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 50 {
			return ErrorResult("Limit must be 1-50", "Reduce limit value"), nil, nil
		}

		drugs, err := deps.FDA.SearchDrugs(ctx, input.Query, limit)
		if err != nil {
			deps.Logger.Error("drug search failed", "query", input.Query, "error", err)
			return ErrorResult(fmt.Sprintf("Error searching drugs: %v", err), ""), nil, nil
		}

		if len(drugs) == 0 {
			return TextResult(fmt.Sprintf("No drugs found matching '%s'. Try a different search term.", input.Query)), nil, nil
		}

		deps.Logger.Info("drug search completed", "query", input.Query, "results", len(drugs))
		return TextResult(formatDrugList(input.Query, drugs)), nil, nil
	}
}

func formatDrugList(query string, drugs []openfda.DrugLabel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Drug Search Results for '%s'**\n\n", query)
	fmt.Fprintf(&sb, "Found %d drug(s)\n\n", len(drugs))

	for i, drug := range drugs {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, drug.Field("brand_name", "Unknown Brand"))
		fmt.Fprintf(&sb, "   Generic Name: %s\n", drug.Field("generic_name", notSpecified))
		fmt.Fprintf(&sb, "   Manufacturer: %s\n", drug.Field("manufacturer_name", notSpecified))
		fmt.Fprintf(&sb, "   Route: %s\n", drug.Field("route", notSpecified))
		fmt.Fprintf(&sb, "   Dosage Form: %s\n", drug.Field("dosage_form", notSpecified))

		if len(drug.Purpose) > 0 {
			fmt.Fprintf(&sb, "   Purpose: %s\n", clip(drug.Purpose[0], 200))
		}

		fmt.Fprintf(&sb, "   Last Updated: %s\n\n", drug.EffectiveTime)
	}

	return sb.String()
}
