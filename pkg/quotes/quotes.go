// Package quotes fetches live stock quotes from a Yahoo-Finance-style
// endpoint. The provider rate-limits aggressively, so batch fetches run at
// most batchSize lookups concurrently and pause between batches.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultBatchSize  = 5
	defaultBatchDelay = 100 * time.Millisecond
)

// Quote is one price snapshot
type Quote struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency"`
	MarketState   string  `json:"market_state"`
}

// Client fetches quotes over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	batchSize  int
	batchDelay time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithBatchSize overrides how many symbols are fetched concurrently
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithBatchDelay overrides the pause between batches
func WithBatchDelay(d time.Duration) Option {
	return func(c *Client) {
		c.batchDelay = d
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a quote client for the given base URL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		batchSize:  defaultBatchSize,
		batchDelay: defaultBatchDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string  `json:"symbol"`
			LongName                   string  `json:"longName"`
			ShortName                  string  `json:"shortName"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketChange        float64 `json:"regularMarketChange"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			Currency                   string  `json:"currency"`
			MarketState                string  `json:"marketState"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Fetch retrieves the quote for a single symbol
func (c *Client) Fetch(ctx context.Context, symbol string) (*Quote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote fetch for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("quote fetch for %s: %w", symbol, err)
	}

	if len(body.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote fetch for %s: no result", symbol)
	}

	r := body.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}

	return &Quote{
		Symbol:        r.Symbol,
		CompanyName:   name,
		Price:         r.RegularMarketPrice,
		Change:        r.RegularMarketChange,
		ChangePercent: r.RegularMarketChangePercent,
		Currency:      r.Currency,
		MarketState:   r.MarketState,
	}, nil
}

// FetchBatch retrieves quotes for many symbols. Symbols are processed in
// fixed-size batches, concurrently within a batch, with a pause between
// batches. Failed lookups are skipped; the returned map contains only the
// symbols that resolved.
func (c *Client) FetchBatch(ctx context.Context, symbols []string) (map[string]*Quote, error) {
	results := make(map[string]*Quote, len(symbols))
	var mu sync.Mutex

	for start := 0; start < len(symbols); start += c.batchSize {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		end := start + c.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()
				quote, err := c.Fetch(ctx, symbol)
				if err != nil {
					return
				}
				mu.Lock()
				results[symbol] = quote
				mu.Unlock()
			}(symbol)
		}
		wg.Wait()

		if end < len(symbols) {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(c.batchDelay):
			}
		}
	}

	return results, nil
}
