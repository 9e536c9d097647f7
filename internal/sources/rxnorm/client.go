// Package rxnorm queries the RxNav standardized drug-nomenclature API.
package rxnorm

import (
	"context"
	"net/url"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

// DefaultBaseURL is the RxNav REST API root.
const DefaultBaseURL = "https://rxnav.nlm.nih.gov/REST"

// Drug is one RxNorm concept.
type Drug struct {
	Name     string   `json:"name"`
	RxCUI    string   `json:"rxcui"`
	TTY      string   `json:"tty"`
	Language string   `json:"language"`
	Synonym  []string `json:"synonym"`
}

// Client queries the drugs endpoint.
type Client struct {
	fetcher *fetch.Client
	baseURL string
}

// NewClient creates an RxNorm client. An empty baseURL uses the live API.
func NewClient(fetcher *fetch.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

type drugsResponse struct {
	DrugGroup struct {
		ConceptGroup []struct {
			Concept []Drug `json:"concept"`
		} `json:"conceptGroup"`
	} `json:"drugGroup"`
}

// SearchDrugs looks up RxNorm concepts by drug name. Concepts come from the
// first concept group of the response, truncated to limit.
func (c *Client) SearchDrugs(ctx context.Context, name string, limit int) ([]Drug, error) {
	params := url.Values{}
	params.Set("name", name)

	var resp drugsResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/drugs.json", params, &resp); err != nil {
		return nil, err
	}

	groups := resp.DrugGroup.ConceptGroup
	if len(groups) == 0 {
		return nil, nil
	}

	results := groups[0].Concept
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
