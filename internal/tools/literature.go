package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/pubmed"
)

// SearchLiteratureInput defines the input schema for the
// search_medical_literature tool.
type SearchLiteratureInput struct {
	Query      string `json:"query" jsonschema:"required,Medical topic or condition to search for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of articles to return (1-20, default 10)"`
}

// NewSearchLiteratureHandler creates the search_medical_literature tool handler.
func NewSearchLiteratureHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchLiteratureInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchLiteratureInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a medical topic"), nil, nil
		}

		max := input.MaxResults
		if max <= 0 {
			max = 10
		}
		if max > 20 {
			return ErrorResult("max_results must be 1-20", "Reduce max_results value"), nil, nil
		}

		articles, err := deps.PubMed.Search(ctx, input.Query, max)
		if err != nil {
			deps.Logger.Error("literature search failed", "query", input.Query, "error", err)
			return ErrorResult(fmt.Sprintf("Error searching medical literature: %v", err), ""), nil, nil
		}

		if len(articles) == 0 {
			return TextResult(fmt.Sprintf("No medical articles found for '%s'. Try a different search term.", input.Query)), nil, nil
		}

		deps.Logger.Info("literature search completed", "query", input.Query, "results", len(articles))
		return TextResult(formatArticles(input.Query, articles)), nil, nil
	}
}

func formatArticles(query string, articles []pubmed.Article) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Medical Literature Search: '%s'**\n\n", query)
	fmt.Fprintf(&sb, "Found %d article(s)\n\n", len(articles))

	for i, article := range articles {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, article.Title)
		fmt.Fprintf(&sb, "   PMID: %s\n", article.PMID)
		fmt.Fprintf(&sb, "   Journal: %s\n", article.Journal)
		fmt.Fprintf(&sb, "   Publication Date: %s\n", article.PublicationDate)
		if len(article.Authors) > 0 {
			fmt.Fprintf(&sb, "   Authors: %s\n", strings.Join(article.Authors, ", "))
		}
		if article.Abstract != pubmed.AbstractUnavailable {
			fmt.Fprintf(&sb, "   Abstract: %s\n", clip(article.Abstract, 300))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
