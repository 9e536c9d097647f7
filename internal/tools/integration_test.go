//go:build integration

package tools_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medmcp/medmcp-go/internal/config"
	"github.com/medmcp/medmcp-go/internal/fetch"
	"github.com/medmcp/medmcp-go/internal/sources/openfda"
	"github.com/medmcp/medmcp-go/internal/sources/pubmed"
	"github.com/medmcp/medmcp-go/internal/sources/rxnorm"
	"github.com/medmcp/medmcp-go/internal/sources/scholar"
	"github.com/medmcp/medmcp-go/internal/sources/who"
	"github.com/medmcp/medmcp-go/internal/tools"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	logger := testLogger()

	// Fake upstream serving every data source.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"openfda":{"brand_name":["Advil"]},"effective_time":"20240101"}]}`))
	}))
	defer ts.Close()

	fetcher := fetch.NewClient(5 * time.Second)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := &tools.Dependencies{
		FDA:     openfda.NewClient(fetcher, ts.URL),
		WHO:     who.NewClient(fetcher, ts.URL),
		RxNorm:  rxnorm.NewClient(fetcher, ts.URL),
		PubMed:  pubmed.NewClient(fetcher, ts.URL),
		Scholar: scholar.NewClient(fetcher, ts.URL, 0, 0, quiet),
		Logger:  logger,
	}
	cfg := &config.Config{MyNumber: "919876543210"}

	// Create server
	impl := &mcp.Implementation{
		Name:    "test-medmcp",
		Version: "0.0.1-test",
	}
	server := mcp.NewServer(impl, nil)
	tools.RegisterAll(server, deps, cfg)

	// Create in-memory transports
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Run server in background
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, serverTransport)
	}()

	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	defer session.Close()

	t.Run("tools/list returns all seven tools", func(t *testing.T) {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, result.Tools, 7)

		names := make(map[string]bool)
		for _, tool := range result.Tools {
			names[tool.Name] = true
		}
		for _, want := range []string{
			"validate", "search_drugs", "get_drug_details", "get_health_statistics",
			"search_medical_literature", "search_drug_nomenclature", "search_google_scholar",
		} {
			assert.True(t, names[want], "missing tool %s", want)
		}
	})

	t.Run("validate returns the configured number", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "validate",
			Arguments: map[string]any{},
		})
		require.NoError(t, err)
		require.Len(t, result.Content, 1)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		assert.Equal(t, "919876543210", textContent.Text)
		assert.False(t, result.IsError)
	})

	t.Run("search_drugs returns a formatted text block", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "search_drugs",
			Arguments: map[string]any{"query": "advil", "limit": 5},
		})
		require.NoError(t, err)
		require.Len(t, result.Content, 1)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		assert.Contains(t, textContent.Text, "**Advil**")
		assert.False(t, result.IsError)
	})

	// Cleanup
	cancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Logf("server stopped with: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not stop within timeout")
	}
}
