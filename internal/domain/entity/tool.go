package entity

import "fmt"

type ToolName string

const (
	ToolSearchInternet  ToolName = "search_internet"
	ToolSearchInstagram ToolName = "search_instagram"
	ToolScrapeWebsite   ToolName = "scrape_website"

	ToolDelegateWork ToolName = "delegate_work"
	ToolAskQuestion  ToolName = "ask_question"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolDefinition is what the model sees of a tool.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}

type SearchResult struct {
	Title   string
	Link    string
	Snippet string
}

// ToolError is a failure the calling agent is expected to read and react to.
// It is rendered into the conversation instead of aborting the task.
type ToolError struct {
	Tool  ToolName
	Input string
	Err   error
}

func (e *ToolError) Error() string {
	switch e.Tool {
	case ToolSearchInternet, ToolSearchInstagram:
		return fmt.Sprintf("Error searching: %v", e.Err)
	case ToolScrapeWebsite:
		return fmt.Sprintf("Error scraping website %s: %v", e.Input, e.Err)
	default:
		return fmt.Sprintf("Error: %s: %v", e.Tool, e.Err)
	}
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
