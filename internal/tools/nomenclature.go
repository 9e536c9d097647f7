package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/rxnorm"
)

// SearchNomenclatureInput defines the input schema for the
// search_drug_nomenclature tool.
type SearchNomenclatureInput struct {
	Query string `json:"query" jsonschema:"required,Drug name to search for in the RxNorm database"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of results to return (1-20, default 10)"`
}

// NewSearchNomenclatureHandler creates the search_drug_nomenclature tool handler.
func NewSearchNomenclatureHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchNomenclatureInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchNomenclatureInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a drug name"), nil, nil
		}

		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 20 {
			return ErrorResult("Limit must be 1-20", "Reduce limit value"), nil, nil
		}

		drugs, err := deps.RxNorm.SearchDrugs(ctx, input.Query, limit)
		if err != nil {
			deps.Logger.Error("nomenclature search failed", "query", input.Query, "error", err)
			return ErrorResult(fmt.Sprintf("Error searching RxNorm: %v", err), ""), nil, nil
		}

		if len(drugs) == 0 {
			return TextResult(fmt.Sprintf("No drugs found in RxNorm database for '%s'. Try a different search term.", input.Query)), nil, nil
		}

		return TextResult(formatNomenclature(input.Query, drugs)), nil, nil
	}
}

func formatNomenclature(query string, drugs []rxnorm.Drug) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**RxNorm Drug Search: '%s'**\n\n", query)
	fmt.Fprintf(&sb, "Found %d drug(s)\n\n", len(drugs))

	for i, drug := range drugs {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, drug.Name)
		fmt.Fprintf(&sb, "   RxCUI: %s\n", drug.RxCUI)
		fmt.Fprintf(&sb, "   Term Type: %s\n", drug.TTY)
		fmt.Fprintf(&sb, "   Language: %s\n", drug.Language)
		if len(drug.Synonym) > 0 {
			syns := drug.Synonym
			suffix := ""
			if len(syns) > 3 {
				syns = syns[:3]
				suffix = "..."
			}
			fmt.Fprintf(&sb, "   Synonyms: %s%s\n", strings.Join(syns, ", "), suffix)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
