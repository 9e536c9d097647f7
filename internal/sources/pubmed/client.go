// Package pubmed queries the NCBI E-utilities biomedical-literature API.
//
// Search is two-phase: esearch resolves a text query to PMIDs, efetch bulk
// fetches article details for those PMIDs in a single request.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

// DefaultBaseURL is the E-utilities API root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Placeholders for fields the efetch payload does not carry.
const (
	AbstractUnavailable = "Abstract not available"
	JournalUnavailable  = "Journal information not available"
	DateUnavailable     = "Date not available"
)

// Article is one biomedical-literature record. Fields absent from the
// upstream payload carry explicit placeholder values.
type Article struct {
	PMID            string
	Title           string
	Abstract        string
	Authors         []string
	Journal         string
	PublicationDate string
}

// Client queries the esearch and efetch endpoints.
type Client struct {
	fetcher *fetch.Client
	baseURL string
}

// NewClient creates a PubMed client. An empty baseURL uses the live API.
func NewClient(fetcher *fetch.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type articleSet struct {
	XMLName  xml.Name     `xml:"PubmedArticleSet"`
	Articles []rawArticle `xml:"PubmedArticle"`
}

type rawArticle struct {
	PMID     string   `xml:"MedlineCitation>PMID"`
	Title    string   `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstract []string `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Journal  string   `xml:"MedlineCitation>Article>Journal>Title"`
	PubYear  string   `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
	PubMonth string   `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Month"`
	Authors  []struct {
		LastName string `xml:"LastName"`
		ForeName string `xml:"ForeName"`
	} `xml:"MedlineCitation>Article>AuthorList>Author"`
}

// Search resolves a text query to PMIDs, then bulk-fetches details. An empty
// phase-1 id list short-circuits: no efetch request is made.
func (c *Client) Search(ctx context.Context, term string, max int) ([]Article, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(max))

	var search esearchResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/esearch.fcgi", params, &search); err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}

	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > max {
		ids = ids[:max]
	}

	fetchParams := url.Values{}
	fetchParams.Set("db", "pubmed")
	fetchParams.Set("id", strings.Join(ids, ","))
	fetchParams.Set("retmode", "xml")

	body, err := c.fetcher.Get(ctx, c.baseURL+"/efetch.fcgi", fetchParams, nil)
	if err != nil {
		return nil, fmt.Errorf("efetch: %w", err)
	}

	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("efetch parse error: %w", err)
	}

	articles := make([]Article, 0, len(set.Articles))
	for _, raw := range set.Articles {
		articles = append(articles, normalize(raw))
	}
	if len(articles) > max {
		articles = articles[:max]
	}
	return articles, nil
}

// normalize converts a raw efetch record to an Article, substituting
// placeholders for absent fields.
func normalize(raw rawArticle) Article {
	a := Article{
		PMID:     raw.PMID,
		Title:    strings.TrimSpace(raw.Title),
		Abstract: strings.TrimSpace(strings.Join(raw.Abstract, " ")),
		Journal:  strings.TrimSpace(raw.Journal),
	}

	if a.Abstract == "" {
		a.Abstract = AbstractUnavailable
	}
	if a.Journal == "" {
		a.Journal = JournalUnavailable
	}

	switch {
	case raw.PubYear != "" && raw.PubMonth != "":
		a.PublicationDate = raw.PubMonth + " " + raw.PubYear
	case raw.PubYear != "":
		a.PublicationDate = raw.PubYear
	default:
		a.PublicationDate = DateUnavailable
	}

	for _, au := range raw.Authors {
		name := strings.TrimSpace(au.ForeName + " " + au.LastName)
		if name != "" {
			a.Authors = append(a.Authors, name)
		}
	}

	return a
}
