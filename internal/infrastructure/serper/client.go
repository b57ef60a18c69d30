package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
)

var (
	_ output.SearchPort = (*Client)(nil)
	_ output.ScrapePort = (*Client)(nil)
)

const (
	defaultSearchURL = "https://google.serper.dev/search"
	defaultScrapeURL = "https://scrape.serper.dev"
)

type Config struct {
	APIKey        string
	SearchURL     string
	ScrapeURL     string
	SearchTimeout time.Duration
	ScrapeTimeout time.Duration
	HTTPClient    *http.Client
	Logger        output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:        apiKey,
		SearchURL:     defaultSearchURL,
		ScrapeURL:     defaultScrapeURL,
		SearchTimeout: 15 * time.Second,
		ScrapeTimeout: 30 * time.Second,
	}
}

// Client talks to the serper.dev search and scrape endpoints.
type Client struct {
	cfg    Config
	http   *http.Client
	logger output.LoggerPort
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: cfg.Logger,
	}
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type scrapeRequest struct {
	URL string `json:"url"`
}

type scrapeResponse struct {
	Text string `json:"text"`
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error) {
	var resp searchResponse
	if err := c.post(ctx, c.cfg.SearchURL, c.cfg.SearchTimeout, searchRequest{Query: query, Num: limit}, &resp); err != nil {
		return nil, err
	}

	results := make([]entity.SearchResult, 0, len(resp.Organic))
	for _, r := range resp.Organic {
		results = append(results, entity.SearchResult{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return results, nil
}

func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	var resp scrapeResponse
	if err := c.post(ctx, c.cfg.ScrapeURL, c.cfg.ScrapeTimeout, scrapeRequest{URL: url}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) post(ctx context.Context, url string, timeout time.Duration, body any, out any) error {
	if c.cfg.APIKey == "" {
		return entity.ErrSearchNotConfigured
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if c.logger != nil {
		c.logger.Debug("Serper response", "url", url, "status", res.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode, bytes.TrimSpace(b))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
