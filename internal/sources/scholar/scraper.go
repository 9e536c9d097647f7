// Package scholar scrapes Google Scholar search-result pages.
//
// The source is unofficial HTML with no stable schema, so every extraction
// is best effort: candidate blocks and fields are located through ordered
// selector fallbacks, and any field that cannot be extracted degrades to an
// empty string instead of failing the record.
package scholar

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/medmcp/medmcp-go/internal/fetch"
)

// DefaultBaseURL is the Scholar search page.
const DefaultBaseURL = "https://scholar.google.com/scholar"

// minTitleLen filters out selector noise: candidates whose title is this
// short are placeholder blocks, not results.
const minTitleLen = 5

// Article is one scraped search result. Every field except Title may be
// empty; Journal and Year are derived, not read directly.
type Article struct {
	Title     string
	Authors   string
	Abstract  string
	Journal   string
	Year      string
	Citations string
	URL       string
}

// Extraction strategy tables. The page markup drifts without notice; when a
// scrape starts coming back empty, these are the lists to update.
var (
	// Candidate result blocks, most specific first. A later entry is only
	// tried when the earlier ones match nothing.
	resultBlockSelectors = []string{
		"div.gs_r div.gs_ri",
		".gs_r, .gs_ri",
		"[data-rp]",
	}

	titleSelectors     = []string{".gs_rt a", ".gs_rt", "h3 a", "h3", "a[data-clk]"}
	authorsSelectors   = []string{".gs_a", ".gs_authors", ".gs_venue", "[class*=author]", "[class*=venue]"}
	abstractSelectors  = []string{".gs_rs", ".gs_rs_a", ".gs_snippet", "[class*=snippet]", "[class*=abstract]"}
	citationsSelectors = []string{".gs_fl a", ".gs_fl", "[class*=citation]", "a[href*=cites]"}

	yearPattern = regexp.MustCompile(`\b\d{4}\b`)

	// Journal derivation from the author/venue line, first match wins.
	journalPatterns = []*regexp.Regexp{
		regexp.MustCompile(` - ([^-]+)$`),
		regexp.MustCompile(`, ([^,]+)$`),
		regexp.MustCompile(`\bin ([^,]+)`),
	}
)

// browserHeaders is the desktop-browser header set sent with every request
// to reduce the chance of being blocked or served a degraded page. Only
// gzip is advertised: the fetch layer decompresses gzip bodies itself and
// cannot decode brotli.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Accept-Encoding": "gzip",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Client scrapes the Scholar search page.
type Client struct {
	fetcher  *fetch.Client
	baseURL  string
	minDelay time.Duration
	maxDelay time.Duration
	logger   *slog.Logger
}

// NewClient creates a Scholar client. An empty baseURL uses the live page;
// the delay interval bounds the mandatory pre-request sleep.
func NewClient(fetcher *fetch.Client, baseURL string, minDelay, maxDelay time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		fetcher:  fetcher,
		baseURL:  baseURL,
		minDelay: minDelay,
		maxDelay: maxDelay,
		logger:   logger,
	}
}

// Search scrapes search results for a free-text query, truncated to limit.
// The pre-request delay is mandatory throttling, not backoff.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if err := c.randomDelay(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en")

	body, err := c.fetcher.Get(ctx, c.baseURL, params, browserHeaders)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	articles := parseResults(doc)
	c.logger.Debug("scholar scrape completed", "query", query, "results", len(articles))

	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// randomDelay sleeps for a uniform random duration in [minDelay, maxDelay],
// aborting early if the context is cancelled.
func (c *Client) randomDelay(ctx context.Context) error {
	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseResults extracts articles from a parsed result page, in document
// order. Candidates with a missing or too-short title are dropped.
func parseResults(doc *goquery.Document) []Article {
	blocks := selectBlocks(doc)
	if blocks == nil {
		return nil
	}

	var articles []Article
	blocks.Each(func(_ int, block *goquery.Selection) {
		article := extractArticle(block)
		if len(article.Title) <= minTitleLen {
			return
		}
		articles = append(articles, article)
	})
	return articles
}

// selectBlocks finds candidate result blocks using the ordered selector
// fallbacks: broader selectors are only tried when narrower ones miss.
func selectBlocks(doc *goquery.Document) *goquery.Selection {
	for _, sel := range resultBlockSelectors {
		if blocks := doc.Find(sel); blocks.Length() > 0 {
			return blocks
		}
	}
	return nil
}

// extractArticle pulls the fields of one candidate block. Each field falls
// through its selector list independently.
func extractArticle(block *goquery.Selection) Article {
	article := Article{
		Authors:   firstText(block, authorsSelectors),
		Abstract:  firstText(block, abstractSelectors),
		Citations: firstText(block, citationsSelectors),
	}

	if title, ok := firstMatch(block, titleSelectors); ok {
		article.Title = strings.TrimSpace(title.Text())
		article.URL = linkOf(title)
	}

	article.Year = deriveYear(article.Authors, article.Title, article.Abstract)
	article.Journal = deriveJournal(article.Authors)

	return article
}

// firstMatch tries each selector in order, returning the first element that
// matches. Reports false when every selector misses.
func firstMatch(block *goquery.Selection, selectors []string) (*goquery.Selection, bool) {
	for _, sel := range selectors {
		if found := block.Find(sel); found.Length() > 0 {
			return found.First(), true
		}
	}
	return nil, false
}

// firstText is firstMatch flattened to trimmed text, empty on no match.
func firstText(block *goquery.Selection, selectors []string) string {
	found, ok := firstMatch(block, selectors)
	if !ok {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// linkOf returns the href of el, or of its first nested anchor.
func linkOf(el *goquery.Selection) string {
	if href, ok := el.Attr("href"); ok {
		return href
	}
	if href, ok := el.Find("a").First().Attr("href"); ok {
		return href
	}
	return ""
}

// deriveYear scans the author text, then the title, then the abstract for
// the first run of exactly four digits. First match wins.
func deriveYear(authors, title, abstract string) string {
	for _, text := range []string{authors, title, abstract} {
		if m := yearPattern.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// deriveJournal extracts a journal name from the author/venue line using
// the ordered pattern fallbacks. First pattern that matches wins.
func deriveJournal(authors string) string {
	for _, pat := range journalPatterns {
		if m := pat.FindStringSubmatch(authors); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
