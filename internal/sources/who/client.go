// Package who queries the WHO Global Health Observatory OData API.
package who

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

// DefaultBaseURL is the GHO OData API root.
const DefaultBaseURL = "https://ghoapi.azureedge.net/api"

// Indicator is one (location, time) data point for a health indicator.
// NumericValue and the Low/High confidence bounds may be absent. TimeDim
// comes over the wire as a bare JSON number (a year), so it is decoded as
// json.Number rather than string.
type Indicator struct {
	SpatialDim   string      `json:"SpatialDim"`
	TimeDim      json.Number `json:"TimeDim"`
	Value        string      `json:"Value"`
	Comments     string      `json:"Comments"`
	NumericValue *float64    `json:"NumericValue"`
	Low          *float64    `json:"Low"`
	High         *float64    `json:"High"`
	Date         string      `json:"Date"`
}

// Client queries the Indicator endpoint.
type Client struct {
	fetcher *fetch.Client
	baseURL string
}

// NewClient creates a GHO client. An empty baseURL uses the live API.
func NewClient(fetcher *fetch.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

type indicatorResponse struct {
	Value []Indicator `json:"value"`
}

// HealthIndicators queries data points for an indicator name, optionally
// filtered by country code. The bound is enforced here, not by the API.
func (c *Client) HealthIndicators(ctx context.Context, indicator, country string, limit int) ([]Indicator, error) {
	filter := fmt.Sprintf("IndicatorName eq '%s'", indicator)
	if country != "" {
		filter += fmt.Sprintf(" and SpatialDim eq '%s'", country)
	}

	params := url.Values{}
	params.Set("$filter", filter)
	params.Set("$format", "json")

	var resp indicatorResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/Indicator", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Value
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
