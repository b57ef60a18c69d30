package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
)

var _ output.ToolPort = (*ScrapeTool)(nil)

const (
	scrapeBudget  = 3000
	scrapeMaxLine = 50
	minLineLength = 20
)

var boilerplatePrefixes = []string{"Cookie", "Privacy", "Terms", "Copyright"}

type ScrapeTool struct {
	scraper output.ScrapePort
	logger  output.LoggerPort
}

func NewScrapeTool(scraper output.ScrapePort, logger output.LoggerPort) *ScrapeTool {
	return &ScrapeTool{scraper: scraper, logger: logger}
}

func (t *ScrapeTool) Name() entity.ToolName { return entity.ToolScrapeWebsite }
func (t *ScrapeTool) Description() string {
	return "Useful to scrape and summarize a website content, just pass a string with only the full url, " +
		"no need for a final slash `/`, eg: https://google.com or https://clearbit.com/about-us"
}
func (t *ScrapeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"website": map[string]interface{}{
				"type":        "string",
				"description": "Full URL of the website to scrape",
			},
		},
		"required": []string{"website"},
	}
}

func (t *ScrapeTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Website string `json:"website"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", &entity.ToolError{Tool: entity.ToolScrapeWebsite, Input: args, Err: fmt.Errorf("invalid arguments: %w", err)}
	}

	text, err := t.scraper.Scrape(ctx, input.Website)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("Scrape failed", "website", input.Website, "error", err)
		}
		return "", &entity.ToolError{Tool: entity.ToolScrapeWebsite, Input: input.Website, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("No content found for website: %s", input.Website), nil
	}

	summary := Condense(text)
	if t.logger != nil {
		t.logger.Debug("Scrape completed", "website", input.Website, "raw_len", len(text), "summary_len", len(summary))
	}
	return fmt.Sprintf("\nScraped Content: %s\n", summary), nil
}

// Condense cuts text to the scrape budget, then keeps the first meaningful
// lines: longer than 20 characters and not cookie or legal boilerplate.
func Condense(text string) string {
	runes := []rune(text)
	if len(runes) > scrapeBudget {
		text = string(runes[:scrapeBudget])
	}

	kept := make([]string, 0, scrapeMaxLine)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) <= minLineLength || isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
		if len(kept) == scrapeMaxLine {
			break
		}
	}
	return strings.Join(kept, "\n")
}

func isBoilerplate(line string) bool {
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
