package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/sources/openfda"
)

// GetDrugDetailsInput defines the input schema for the get_drug_details tool.
type GetDrugDetailsInput struct {
	NDC string `json:"ndc" jsonschema:"required,National Drug Code (NDC) of the drug"`
}

// NewGetDrugDetailsHandler creates the get_drug_details tool handler.
func NewGetDrugDetailsHandler(deps *Dependencies) mcp.ToolHandlerFor[GetDrugDetailsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetDrugDetailsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.NDC == "" {
			return ErrorResult("NDC cannot be empty", "Provide a National Drug Code"), nil, nil
		}

		drug, err := deps.FDA.GetDrugByNDC(ctx, input.NDC)
		if err != nil {
			deps.Logger.Error("drug details lookup failed", "ndc", input.NDC, "error", err)
			return ErrorResult(fmt.Sprintf("Error fetching drug details: %v", err), ""), nil, nil
		}

		if drug == nil {
			return TextResult(fmt.Sprintf("No drug found with NDC: %s", input.NDC)), nil, nil
		}

		return TextResult(formatDrugDetails(input.NDC, drug)), nil, nil
	}
}

func formatDrugDetails(ndc string, drug *openfda.DrugLabel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Drug Details for NDC: %s**\n\n", ndc)
	sb.WriteString("**Basic Information:**\n")
	fmt.Fprintf(&sb, "- Brand Name: %s\n", drug.Field("brand_name", notSpecified))
	fmt.Fprintf(&sb, "- Generic Name: %s\n", drug.Field("generic_name", notSpecified))
	fmt.Fprintf(&sb, "- Manufacturer: %s\n", drug.Field("manufacturer_name", notSpecified))
	fmt.Fprintf(&sb, "- Route: %s\n", drug.Field("route", notSpecified))
	fmt.Fprintf(&sb, "- Dosage Form: %s\n", drug.Field("dosage_form", notSpecified))
	fmt.Fprintf(&sb, "- Last Updated: %s\n\n", drug.EffectiveTime)

	if len(drug.Purpose) > 0 {
		sb.WriteString("**Purpose/Uses:**\n")
		for i, purpose := range drug.Purpose {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, purpose)
		}
		sb.WriteString("\n")
	}

	if len(drug.Warnings) > 0 {
		sb.WriteString("**Warnings:**\n")
		for i, warning := range drug.Warnings {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, clip(warning, 300))
		}
		sb.WriteString("\n")
	}

	if len(drug.DrugInteractions) > 0 {
		sb.WriteString("**Drug Interactions:**\n")
		for i, interaction := range drug.DrugInteractions {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, clip(interaction, 300))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
