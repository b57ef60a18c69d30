package gemini

import (
	"context"
	"testing"

	"marketing-crew/internal/domain/entity"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_RequiresKey(t *testing.T) {
	_, err := NewAdapter(context.Background(), DefaultConfig(""))

	assert.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestConvertMessages_SplitsSystemAndMergesToolResponses(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.MessageRoleSystem, Content: "You are Senior Photographer"},
		{Role: entity.MessageRoleUser, Content: "Describe three photographs"},
		{
			Role:    entity.MessageRoleAssistant,
			Content: "Let me research first",
			ToolCalls: []entity.ToolCall{
				{ID: "1", Name: "search_internet", Arguments: `{"query":"bottle ads"}`},
				{ID: "2", Name: "search_instagram", Arguments: `{"query":"hydration"}`},
			},
		},
		{Role: entity.MessageRoleTool, ToolCallID: "1", Name: "search_internet", Content: "Search result: a"},
		{Role: entity.MessageRoleTool, ToolCallID: "2", Name: "search_instagram", Content: "Search result: b"},
	}

	system, history := convertMessages(messages)

	require.NotNil(t, system)
	assert.Equal(t, genai.Text("You are Senior Photographer"), system.Parts[0])

	require.Len(t, history, 3)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	require.Len(t, history[1].Parts, 3)
	call, ok := history[1].Parts[1].(genai.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "search_internet", call.Name)
	assert.Equal(t, "bottle ads", call.Args["query"])

	assert.Equal(t, "user", history[2].Role)
	require.Len(t, history[2].Parts, 2)
	resp, ok := history[2].Parts[1].(genai.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, "search_instagram", resp.Name)
	assert.Equal(t, "Search result: b", resp.Response["result"])
}

func TestDecodeArgs_InvalidJSONKeepsRawInput(t *testing.T) {
	assert.Equal(t, map[string]any{"input": "not json"}, decodeArgs("not json"))
	assert.Empty(t, decodeArgs(""))
}

func TestConvertResponse(t *testing.T) {
	content := &genai.Content{
		Role: "model",
		Parts: []genai.Part{
			genai.Text("Thinking. "),
			genai.FunctionCall{Name: "scrape_website", Args: map[string]any{"website": "https://example.com"}},
		},
	}

	msg := convertResponse(content)

	assert.Equal(t, entity.MessageRoleAssistant, msg.Role)
	assert.Equal(t, "Thinking. ", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "scrape_website", msg.ToolCalls[0].Name)
	assert.JSONEq(t, `{"website":"https://example.com"}`, msg.ToolCalls[0].Arguments)
	assert.NotEmpty(t, msg.ToolCalls[0].ID)
}

func TestConvertSchema(t *testing.T) {
	schema := convertSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"coworker": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"Senior Photographer"},
				"description": "who",
			},
			"tags": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []interface{}{"coworker"},
	})

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"coworker"}, schema.Required)
	require.Contains(t, schema.Properties, "coworker")
	assert.Equal(t, genai.TypeString, schema.Properties["coworker"].Type)
	assert.Equal(t, []string{"Senior Photographer"}, schema.Properties["coworker"].Enum)
	assert.Equal(t, genai.TypeArray, schema.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["tags"].Items.Type)
	assert.Nil(t, convertSchema(nil))
}
