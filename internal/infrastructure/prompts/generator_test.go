package prompts

import (
	"strings"
	"testing"

	"marketing-crew/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAgentPrompt_ListsTools(t *testing.T) {
	prompt, err := GenerateAgentPrompt(AgentPromptData{
		Role:      "Senior Photographer",
		Goal:      "Take amazing photographs",
		Backstory: "You are an expert.",
		Tools: []ToolInfo{
			{Name: "search_internet", Description: "Search the internet"},
			{Name: "scrape_website", Description: "Scrape a website"},
		},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "You are Senior Photographer. You are an expert."))
	assert.Contains(t, prompt, "Your personal goal is: Take amazing photographs")
	assert.Contains(t, prompt, "- search_internet: Search the internet")
	assert.Contains(t, prompt, "- scrape_website: Scrape a website")
}

func TestGenerateAgentPrompt_NoTools(t *testing.T) {
	prompt, err := GenerateAgentPrompt(AgentPromptData{Role: "Analyst", Goal: "g", Backstory: "b"})

	require.NoError(t, err)
	assert.Contains(t, prompt, "You have no tools")
	assert.NotContains(t, prompt, "ONLY have access")
}

func TestGenerateTaskPrompt(t *testing.T) {
	prompt, err := GenerateTaskPrompt(entity.Task{
		Description:    "Write three options",
		ExpectedOutput: "Three options",
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "Current Task: Write three options")
	assert.Contains(t, prompt, "expected criteria for your final answer: Three options")
}

func TestRenderTask_AllPipelineTasks(t *testing.T) {
	data := TaskData{
		Website:            "https://example.com",
		Details:            "launching a reusable water bottle",
		ProductAnalysis:    "PRODUCT-ANALYSIS",
		CompetitorAnalysis: "COMPETITOR-ANALYSIS",
		Campaign:           "CAMPAIGN",
		AdCopy:             "AD-COPY",
		PhotoDraft:         "PHOTO-DRAFT",
		Examples:           PhotographExamples,
	}

	cases := map[entity.TaskName]string{
		entity.TaskProductAnalysis:     "https://example.com",
		entity.TaskCompetitorAnalysis:  "PRODUCT-ANALYSIS",
		entity.TaskCampaignDevelopment: "COMPETITOR-ANALYSIS",
		entity.TaskAdCopy:              "CAMPAIGN",
		entity.TaskPhotograph:          "AD-COPY",
		entity.TaskPhotoReview:         "PHOTO-DRAFT",
	}

	for name, want := range cases {
		text, err := RenderTask(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, text, want, name)
	}
}

func TestRenderTask_PhotographExamples(t *testing.T) {
	text, err := RenderTask(entity.TaskPhotograph, TaskData{Examples: PhotographExamples})

	require.NoError(t, err)
	for _, example := range PhotographExamples {
		assert.Contains(t, text, "- "+example)
	}
}

func TestRenderTask_Unknown(t *testing.T) {
	_, err := RenderTask("nope", TaskData{})
	assert.Error(t, err)
}

func TestRender_Delegation(t *testing.T) {
	text, err := Render(DelegateWorkTemplate, DelegationData{
		From:    "Chief Creative Director",
		Task:    "Rework option 2",
		Context: "Full draft here",
	})

	require.NoError(t, err)
	assert.Contains(t, text, "Chief Creative Director is delegating this work to you:\nRework option 2")
	assert.Contains(t, text, "Full draft here")
}

func TestForceFinalAnswer(t *testing.T) {
	assert.Contains(t, ForceFinalAnswer(), "final answer")
}
