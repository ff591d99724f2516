package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/mattgrange/winescout/constants"
	"github.com/mattgrange/winescout/internal/entity"
)

// Config for the market-data client.
type Config struct {
	BaseURL   string // default https://www.vivino.com
	UserAgent string // the source rejects unidentified clients
	Timeout   time.Duration
}

// Client resolves one WineRecord against the external market source: a
// search request, the top result card, and the wine's detail page. All
// structural assumptions about the source's HTML live in this package; a
// layout change means updating these selectors and nothing else.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.vivino.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("MARKET_USER_AGENT")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:66.0) Gecko/20100101 Firefox/66.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// Lookup returns the best-effort market match for one record, or nil when no
// usable match exists. No error escapes this boundary: transport failures,
// empty result pages, and missing required fields all collapse to nil, and
// partially available optional fields degrade to "N/A".
func (c *Client) Lookup(ctx context.Context, rec entity.WineRecord) *entity.MarketMatch {
	rid := uuid.New().String()
	start := time.Now()
	query := BuildQuery(rec)

	c.log.Info("market.lookup.start", "req_id", rid, "query", query)

	doc, err := c.fetchHTML(ctx, c.cfg.BaseURL+"/search/wines?q="+url.QueryEscape(query))
	if err != nil {
		c.log.Warn("market.lookup.search_failed", "req_id", rid, "error", err)
		return nil
	}

	card, ok := parseResultCard(doc, c.cfg.BaseURL)
	if !ok {
		c.log.Warn("market.lookup.no_result", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil
	}

	detail, err := c.fetchHTML(ctx, card.DetailLink)
	if err != nil {
		c.log.Warn("market.lookup.detail_failed",
			"req_id", rid, "link", card.DetailLink, "error", err)
		return nil
	}

	match := &entity.MarketMatch{
		MatchedName:    card.Name,
		DetailLink:     card.DetailLink,
		MatchedCountry: card.Country,
		MatchedRegion:  card.Region,
		Rating:         card.Rating,
		NumRatings:     card.NumRatings,
		FoodPairings:   parseFoodPairings(detail),
	}

	price := card.Price
	if len(price) <= 1 {
		price = parseDetailPrice(detail)
	}
	match.MarketPrice, match.PriceRatio = normalizeAndRatio(price, rec.Price)

	c.log.Info("market.lookup.ok",
		"req_id", rid,
		"matched", match.MatchedName,
		"rating", match.Rating,
		"market_price", match.MarketPrice,
		"pairings", len(match.FoodPairings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return match
}

// BuildQuery concatenates the descriptive fields into the free-text search
// query. A missing field contributes a single blank placeholder so the query
// stays well-formed even for an all-empty record.
func BuildQuery(rec entity.WineRecord) string {
	fields := []string{rec.Name, rec.Producer, rec.Type, rec.Vintage, rec.Region, rec.Country}
	for i, f := range fields {
		if strings.TrimSpace(f) == "" {
			fields[i] = " "
		}
	}
	return strings.Join(fields, " ")
}

func (c *Client) fetchHTML(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("market response body close error", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d for %s", resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// normalizeAndRatio turns the scraped price text into the market_price and
// price_ratio columns. A price that does not survive currency stripping
// yields "N/A" for both, never a silent zero.
func normalizeAndRatio(priceText, menuPrice string) (marketPrice, priceRatio string) {
	market, ok := NormalizePrice(priceText)
	if !ok {
		return constants.NotAvailable, constants.NotAvailable
	}
	marketPrice = FormatPrice(market)

	menu, ok := NormalizePrice(menuPrice)
	if !ok || market == 0 {
		return marketPrice, constants.NotAvailable
	}
	return marketPrice, FormatPrice(menu / market)
}
