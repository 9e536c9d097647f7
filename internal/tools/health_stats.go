package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/who"
)

// GetHealthStatisticsInput defines the input schema for the
// get_health_statistics tool.
type GetHealthStatisticsInput struct {
	Indicator string `json:"indicator" jsonschema:"required,Health indicator to search for (e.g. 'Life expectancy' or 'Mortality rate')"`
	Country   string `json:"country,omitempty" jsonschema:"Country code (e.g. 'USA' or 'GBR') - optional"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Number of results to return (1-20, default 10)"`
}

// NewGetHealthStatisticsHandler creates the get_health_statistics tool handler.
func NewGetHealthStatisticsHandler(deps *Dependencies) mcp.ToolHandlerFor[GetHealthStatisticsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetHealthStatisticsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Indicator == "" {
			return ErrorResult("Indicator cannot be empty", "Provide a health indicator name"), nil, nil
		}

		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 20 {
			return ErrorResult("Limit must be 1-20", "Reduce limit value"), nil, nil
		}

		indicators, err := deps.WHO.HealthIndicators(ctx, input.Indicator, input.Country, limit)
		if err != nil {
			deps.Logger.Error("health statistics fetch failed", "indicator", input.Indicator, "error", err)
			return ErrorResult(fmt.Sprintf("Error fetching health statistics: %v", err), ""), nil, nil
		}

		if len(indicators) == 0 {
			msg := fmt.Sprintf("No health indicators found for '%s'", input.Indicator)
			if input.Country != "" {
				msg += " in " + input.Country
			}
			return TextResult(msg + ". Try a different search term."), nil, nil
		}

		return TextResult(formatIndicators(input.Indicator, input.Country, indicators)), nil, nil
	}
}

func formatIndicators(indicator, country string, indicators []who.Indicator) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Health Statistics: %s**\n\n", indicator)
	if country != "" {
		fmt.Fprintf(&sb, "Country: %s\n", country)
	}
	fmt.Fprintf(&sb, "Found %d data points\n\n", len(indicators))

	for i, ind := range indicators {
		fmt.Fprintf(&sb, "%d. **%s** (%s)\n", i+1, ind.SpatialDim, ind.TimeDim)
		fmt.Fprintf(&sb, "   Value: %s %s\n", ind.Value, ind.Comments)
		if ind.NumericValue != nil {
			fmt.Fprintf(&sb, "   Numeric Value: %g\n", *ind.NumericValue)
		}
		if ind.Low != nil && ind.High != nil {
			fmt.Fprintf(&sb, "   Range: %g - %g\n", *ind.Low, *ind.High)
		}
		fmt.Fprintf(&sb, "   Date: %s\n\n", ind.Date)
	}

	return sb.String()
}
