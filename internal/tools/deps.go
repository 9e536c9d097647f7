// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/medmcp/medmcp-go/internal/sources/openfda"
	"github.com/medmcp/medmcp-go/internal/sources/pubmed"
	"github.com/medmcp/medmcp-go/internal/sources/rxnorm"
	"github.com/medmcp/medmcp-go/internal/sources/scholar"
	"github.com/medmcp/medmcp-go/internal/sources/who"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	FDA     *openfda.Client
	WHO     *who.Client
	RxNorm  *rxnorm.Client
	PubMed  *pubmed.Client
	Scholar *scholar.Client
	Logger  *slog.Logger
}
