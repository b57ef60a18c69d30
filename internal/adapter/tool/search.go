package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
)

var (
	_ output.ToolPort = (*SearchTool)(nil)
)

const (
	DefaultSearchDelay   = 500 * time.Millisecond
	DefaultSearchResults = 5

	resultSeparator = "\n-----------------"
	instagramPrefix = "site:instagram.com "
)

type SearchConfig struct {
	// Delay is waited before every call to the search service.
	Delay   time.Duration
	Results int
	Logger  output.LoggerPort
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Delay:   DefaultSearchDelay,
		Results: DefaultSearchResults,
	}
}

// SearchTool exposes a SearchPort to agents. The Instagram variant only
// narrows the query to instagram.com.
type SearchTool struct {
	name        entity.ToolName
	description string
	prefix      string
	search      output.SearchPort
	cfg         SearchConfig
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewSearchInternetTool(search output.SearchPort, cfg SearchConfig) *SearchTool {
	return newSearchTool(
		entity.ToolSearchInternet,
		"Useful to search the internet about a given topic and return relevant results.",
		"",
		search, cfg,
	)
}

func NewSearchInstagramTool(search output.SearchPort, cfg SearchConfig) *SearchTool {
	return newSearchTool(
		entity.ToolSearchInstagram,
		"Useful to search for Instagram posts about a given topic and return relevant results.",
		instagramPrefix,
		search, cfg,
	)
}

func newSearchTool(name entity.ToolName, description, prefix string, search output.SearchPort, cfg SearchConfig) *SearchTool {
	if cfg.Results <= 0 {
		cfg.Results = DefaultSearchResults
	}
	return &SearchTool{
		name:        name,
		description: description,
		prefix:      prefix,
		search:      search,
		cfg:         cfg,
		sleep:       sleepContext,
	}
}

func (t *SearchTool) Name() entity.ToolName { return t.name }
func (t *SearchTool) Description() string   { return t.description }
func (t *SearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", &entity.ToolError{Tool: t.name, Input: args, Err: fmt.Errorf("invalid arguments: %w", err)}
	}

	query := t.prefix + input.Query

	if err := t.sleep(ctx, t.cfg.Delay); err != nil {
		return "", err
	}

	results, err := t.search.Search(ctx, query, t.cfg.Results)
	if err != nil {
		if t.cfg.Logger != nil {
			t.cfg.Logger.Warn("Search failed", "tool", t.name, "query", query, "error", err)
		}
		return "", &entity.ToolError{Tool: t.name, Input: query, Err: err}
	}

	if t.cfg.Logger != nil {
		t.cfg.Logger.Debug("Search completed", "tool", t.name, "query", query, "results", len(results))
	}

	return fmt.Sprintf("\nSearch result: %s\n", FormatResults(results, t.cfg.Results)), nil
}

// FormatResults renders at most limit results as Title/Link/Snippet blocks.
func FormatResults(results []entity.SearchResult, limit int) string {
	if len(results) > limit {
		results = results[:limit]
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, strings.Join([]string{
			"Title: " + orNA(r.Title),
			"Link: " + orNA(r.Link),
			"Snippet: " + orNA(r.Snippet),
			resultSeparator,
		}, "\n"))
	}
	return strings.Join(blocks, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
