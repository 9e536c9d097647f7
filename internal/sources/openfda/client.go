// Package openfda queries the FDA drug-label registry.
package openfda

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

// DefaultBaseURL is the openFDA API root.
const DefaultBaseURL = "https://api.fda.gov"

// DrugLabel is one drug-label record. The openfda block maps vendor
// identifiers to lists of names; any of them may be absent.
type DrugLabel struct {
	OpenFDA          map[string][]string `json:"openfda"`
	Purpose          []string            `json:"purpose"`
	Warnings         []string            `json:"warnings"`
	DrugInteractions []string            `json:"drug_interactions"`
	EffectiveTime    string              `json:"effective_time"`
}

// Field returns the first value for an openfda key, or def when absent.
func (d DrugLabel) Field(key, def string) string {
	if vals, ok := d.OpenFDA[key]; ok && len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	return def
}

// Client queries the drug-label endpoint.
type Client struct {
	fetcher *fetch.Client
	baseURL string
}

// NewClient creates an openFDA client. An empty baseURL uses the live API.
func NewClient(fetcher *fetch.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

type labelResponse struct {
	Results []DrugLabel `json:"results"`
}

// SearchDrugs looks up drug labels by brand name, truncated to limit.
func (c *Client) SearchDrugs(ctx context.Context, query string, limit int) ([]DrugLabel, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("openfda.brand_name:%s", query))
	params.Set("limit", strconv.Itoa(limit))

	var resp labelResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/drug/label.json", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetDrugByNDC looks up a single drug label by its National Drug Code.
// Returns nil when no label matches.
func (c *Client) GetDrugByNDC(ctx context.Context, ndc string) (*DrugLabel, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("openfda.product_ndc:%s", ndc))
	params.Set("limit", "1")

	var resp labelResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/drug/label.json", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}
