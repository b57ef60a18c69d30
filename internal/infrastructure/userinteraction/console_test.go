package userinteraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"marketing-crew/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*ConsoleUserInteraction, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return NewConsole(strings.NewReader(input), &out), &out
}

func TestAskQuestion_ReadsLines(t *testing.T) {
	console, out := newTestConsole("https://bottle.example\n  hikers  ")

	website, err := console.AskQuestion(context.Background(), "What is the product website?")
	require.NoError(t, err)
	details, err := console.AskQuestion(context.Background(), "Any extra details?")
	require.NoError(t, err)

	assert.Equal(t, "https://bottle.example", website)
	assert.Equal(t, "hikers", details)
	assert.Contains(t, out.String(), "What is the product website?\n")
}

func TestAskQuestion_EmptyInput(t *testing.T) {
	console, _ := newTestConsole("")

	_, err := console.AskQuestion(context.Background(), "?")
	assert.Error(t, err)
}

func TestOnStep_ToolCallAndObservation(t *testing.T) {
	console, out := newTestConsole("")

	console.OnStep(context.Background(), entity.AgentStep{
		Agent:   entity.RoleMarketAnalyst,
		Kind:    entity.StepToolCall,
		Tool:    string(entity.ToolSearchInternet),
		Content: `{"query":"hiking bottles"}`,
	})
	console.OnStep(context.Background(), entity.AgentStep{
		Agent:   entity.RoleMarketAnalyst,
		Kind:    entity.StepObservation,
		Tool:    string(entity.ToolSearchInternet),
		Content: "Error searching: status 500",
	})

	text := out.String()
	assert.Contains(t, text, "Search internet (Lead Market Analyst)")
	assert.Contains(t, text, "Query: hiking bottles")
	assert.Contains(t, text, "❌ Error searching: status 500")
}

func TestShowError_Hints(t *testing.T) {
	console, out := newTestConsole("")

	console.ShowError(context.Background(), fmt.Errorf("run failed: %w", &entity.QuotaError{Provider: "gemini", Err: errors.New("429")}))

	assert.Contains(t, out.String(), "Error occurred: run failed")
	assert.Contains(t, out.String(), "quota is exhausted")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "привет...", truncate("приветствую", 6))
}
