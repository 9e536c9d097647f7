package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/scholar"
)

// noScholarResults explains the likely causes: the page is unofficial and
// adversarial toward automated access, so an empty scrape is ambiguous.
const noScholarResults = "No academic articles found for '%s'. This could be due to:\n" +
	"- No results matching your query\n" +
	"- Google Scholar rate limiting\n" +
	"- Network connectivity issues\n\n" +
	"Try refining your search terms or try again later."

// SearchScholarInput defines the input schema for the search_google_scholar tool.
type SearchScholarInput struct {
	Query string `json:"query" jsonschema:"required,Academic topic or research query to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of results to return (1-20, default 10)"`
}

// NewSearchScholarHandler creates the search_google_scholar tool handler.
func NewSearchScholarHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchScholarInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchScholarInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a research topic"), nil, nil
		}

		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 20 {
			return ErrorResult("Limit must be 1-20", "Reduce limit value"), nil, nil
		}

		articles, err := deps.Scholar.Search(ctx, input.Query, limit)
		if err != nil {
			deps.Logger.Error("scholar search failed", "query", input.Query, "error", err)
			return ErrorResult(
				fmt.Sprintf("Error searching Google Scholar: %v", err),
				"This might be due to rate limiting or network issues. Please try again later",
			), nil, nil
		}

		if len(articles) == 0 {
			return TextResult(fmt.Sprintf(noScholarResults, input.Query)), nil, nil
		}

		deps.Logger.Info("scholar search completed", "query", input.Query, "results", len(articles))
		return TextResult(formatScholarArticles(input.Query, articles)), nil, nil
	}
}

func formatScholarArticles(query string, articles []scholar.Article) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Google Scholar Search: '%s'**\n\n", query)
	fmt.Fprintf(&sb, "Found %d article(s)\n\n", len(articles))

	for i, article := range articles {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, article.Title)
		if article.Authors != "" {
			fmt.Fprintf(&sb, "   Authors: %s\n", article.Authors)
		}
		if article.Journal != "" {
			fmt.Fprintf(&sb, "   Journal: %s\n", article.Journal)
		}
		if article.Year != "" {
			fmt.Fprintf(&sb, "   Year: %s\n", article.Year)
		}
		if article.Citations != "" {
			fmt.Fprintf(&sb, "   Citations: %s\n", article.Citations)
		}
		if article.URL != "" {
			fmt.Fprintf(&sb, "   URL: %s\n", article.URL)
		}
		if article.Abstract != "" {
			fmt.Fprintf(&sb, "   Abstract: %s\n", clip(article.Abstract, 300))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
