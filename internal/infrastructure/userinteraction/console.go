package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsole(os.Stdin, color.Output)
}

func NewConsole(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (u *ConsoleUserInteraction) ShowWelcome() {
	bold := color.New(color.Bold)
	bold.Fprintln(u.out, "## Welcome to the Marketing Crew")
	fmt.Fprintln(u.out, "-------------------------------")
}

// AskQuestion prints the question on its own line and reads one line of input.
// A final line without newline is accepted.
func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	fmt.Fprintln(u.out, question)

	answer, err := u.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func (u *ConsoleUserInteraction) ShowStage(ctx context.Context, stage entity.StageName, message string) {
	icon := "🚀"
	if stage == entity.StageImage {
		icon = "📸"
	}
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n%s %s\n", icon, message)
}

func (u *ConsoleUserInteraction) OnStep(ctx context.Context, step entity.AgentStep) {
	dim := color.New(color.Faint)

	switch step.Kind {
	case entity.StepThought:
		blue := color.New(color.FgBlue)
		blue.Fprintf(u.out, "\n💭 %s: ", step.Agent)
		dim.Fprintln(u.out, truncate(step.Content, 500))

	case entity.StepToolCall:
		icon, name := getToolDisplay(step.Tool)
		yellow := color.New(color.FgYellow, color.Bold)
		yellow.Fprintf(u.out, "\n%s %s (%s)\n", icon, name, step.Agent)
		if summary := formatToolArguments(step.Tool, step.Content); summary != "" {
			dim.Fprintf(u.out, "   %s\n", summary)
		}

	case entity.StepObservation:
		if strings.HasPrefix(step.Content, "Error") {
			red := color.New(color.FgRed)
			red.Fprint(u.out, "❌ ")
			dim.Fprintln(u.out, truncate(step.Content, 300))
			return
		}
		green := color.New(color.FgGreen)
		green.Fprintf(u.out, "✓ %s\n", truncate(strings.TrimSpace(step.Content), 100))

	case entity.StepFinalAnswer:
		green := color.New(color.FgGreen, color.Bold)
		green.Fprintf(u.out, "\n✅ %s finished %s\n", step.Agent, step.Task)
		dim.Fprintln(u.out, truncate(step.Content, 500))
	}
}

func (u *ConsoleUserInteraction) ShowResult(ctx context.Context, title, content string) {
	bold := color.New(color.Bold)
	bold.Fprintln(u.out, title)
	fmt.Fprintln(u.out, content)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(u.out, "❌ Error occurred: %v\n", err)

	switch {
	case errors.Is(err, entity.ErrQuotaExceeded):
		fmt.Fprintln(u.out, "The model quota is exhausted. Wait for it to reset or run quotacheck before trying again.")
	case errors.Is(err, entity.ErrConfiguration):
		fmt.Fprintln(u.out, "Please check your .env configuration and try again.")
	default:
		fmt.Fprintln(u.out, "Please check your API keys and try again.")
	}
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolSearchInternet:  {"🔎", "Search internet"},
		entity.ToolSearchInstagram: {"📷", "Search instagram"},
		entity.ToolScrapeWebsite:   {"🌐", "Scrape website"},
		entity.ToolDelegateWork:    {"🤝", "Delegate work"},
		entity.ToolAskQuestion:     {"❓", "Ask coworker"},
	}

	if display, ok := displays[entity.ToolName(toolName)]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

func formatToolArguments(toolName, arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}

	switch entity.ToolName(toolName) {
	case entity.ToolSearchInternet, entity.ToolSearchInstagram:
		if query, ok := args["query"].(string); ok {
			return fmt.Sprintf("Query: %s", truncate(query, 80))
		}

	case entity.ToolScrapeWebsite:
		if website, ok := args["website"].(string); ok {
			return fmt.Sprintf("URL: %s", website)
		}

	case entity.ToolDelegateWork, entity.ToolAskQuestion:
		coworker, _ := args["coworker"].(string)
		task, _ := args["task"].(string)
		return fmt.Sprintf("Coworker: %s | %s", coworker, truncate(task, 60))
	}

	return ""
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
