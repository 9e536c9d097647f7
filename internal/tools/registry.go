package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medmcp/medmcp-go/internal/config"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg *config.Config) {
	// Validation tool - returns the operator's number
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate the deployment - returns the operator's caller-identifying number",
	}, NewValidateHandler(cfg))

	// FDA drug-label search by brand/generic name
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_drugs",
		Description: "Search for drug information using the FDA drug-label database",
	}, NewSearchDrugsHandler(deps))

	// FDA drug-label lookup by NDC
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_drug_details",
		Description: "Get detailed information about a specific drug by NDC (National Drug Code)",
	}, NewGetDrugDetailsHandler(deps))

	// WHO Global Health Observatory indicators
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_health_statistics",
		Description: "Get health statistics and indicators from the WHO Global Health Observatory",
	}, NewGetHealthStatisticsHandler(deps))

	// PubMed two-phase literature search
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_medical_literature",
		Description: "Search for medical research articles in PubMed",
	}, NewSearchLiteratureHandler(deps))

	// RxNorm standardized drug nomenclature
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_drug_nomenclature",
		Description: "Search for drug information using RxNorm (standardized drug nomenclature)",
	}, NewSearchNomenclatureHandler(deps))

	// Google Scholar HTML scrape
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_google_scholar",
		Description: "Search for academic research articles using Google Scholar",
	}, NewSearchScholarHandler(deps))
}
