package prompts

import (
	"bytes"
	"fmt"
	"strings"

	"marketing-crew/internal/domain/entity"
)

type ToolInfo struct {
	Name        string
	Description string
}

type AgentPromptData struct {
	Role      string
	Goal      string
	Backstory string
	Tools     []ToolInfo
}

// TaskData feeds the task instruction templates. Each template reads only the
// fields it declares.
type TaskData struct {
	Website            string
	Details            string
	ProductAnalysis    string
	CompetitorAnalysis string
	Campaign           string
	AdCopy             string
	PhotoDraft         string
	Examples           []string
}

type DelegationData struct {
	From    string
	Task    string
	Context string
}

// PhotographExamples show the photographer and the director the expected style.
var PhotographExamples = []string{
	"high tech airplane in a beautiful blue sky in a beautiful sunset super crispy beautiful 4k, professional wide shot",
	"the last supper, with Jesus and his disciples, breaking bread, close shot, soft lighting, 4k, crisp",
	"a bearded old man in the snow, using very warm clothing, with mountains full of snow behind him, soft lighting, 4k, crisp, close up to the camera",
}

// Render executes one of the embedded templates.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// RenderTask renders the instruction template of a pipeline task.
func RenderTask(name entity.TaskName, data TaskData) (string, error) {
	return Render(string(name)+".tmpl", data)
}

func GenerateAgentPrompt(data AgentPromptData) (string, error) {
	return Render(AgentSystemTemplate, data)
}

func GenerateTaskPrompt(task entity.Task) (string, error) {
	return Render(TaskTemplate, task)
}

func ForceFinalAnswer() string {
	text, err := Render(ForceFinalTemplate, nil)
	if err != nil {
		panic(err)
	}
	return text
}
