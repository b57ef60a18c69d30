package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/prompts"
)

var _ output.ToolPort = (*DelegateTool)(nil)

const delegatedExpectedOutput = "Your best answer to your coworker asking you this, accounting for the context shared."

// DelegateTool hands a piece of work or a question to another crew member.
type DelegateTool struct {
	name     entity.ToolName
	from     entity.Role
	crew     *Crew
	template string
	logger   output.LoggerPort
}

func NewDelegateWorkTool(from entity.Role, crew *Crew, logger output.LoggerPort) *DelegateTool {
	return &DelegateTool{
		name:     entity.ToolDelegateWork,
		from:     from,
		crew:     crew,
		template: prompts.DelegateWorkTemplate,
		logger:   logger,
	}
}

func NewAskQuestionTool(from entity.Role, crew *Crew, logger output.LoggerPort) *DelegateTool {
	return &DelegateTool{
		name:     entity.ToolAskQuestion,
		from:     from,
		crew:     crew,
		template: prompts.AskQuestionTemplate,
		logger:   logger,
	}
}

func (t *DelegateTool) Name() entity.ToolName { return t.name }

func (t *DelegateTool) Description() string {
	var list strings.Builder
	for _, m := range t.crew.Coworkers(t.from) {
		fmt.Fprintf(&list, "- %s: %s\n", m.Role(), m.Profile().Goal)
	}

	action := "Delegate a specific task to one of your coworkers."
	if t.name == entity.ToolAskQuestion {
		action = "Ask a specific question to one of your coworkers."
	}

	return fmt.Sprintf(`%s They know nothing about the work, so share absolutely everything you know in the context.

Available coworkers:
%s`, action, list.String())
}

func (t *DelegateTool) Parameters() map[string]interface{} {
	coworkers := t.crew.Coworkers(t.from)
	roles := make([]string, 0, len(coworkers))
	for _, m := range coworkers {
		roles = append(roles, string(m.Role()))
	}

	taskDescription := "The task to delegate"
	if t.name == entity.ToolAskQuestion {
		taskDescription = "The question to ask"
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"coworker": map[string]interface{}{
				"type":        "string",
				"enum":        roles,
				"description": "Role of the coworker",
			},
			"task": map[string]interface{}{
				"type":        "string",
				"description": taskDescription,
			},
			"context": map[string]interface{}{
				"type":        "string",
				"description": "Everything the coworker needs to know",
			},
		},
		"required": []string{"coworker", "task", "context"},
	}
}

func (t *DelegateTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Coworker string `json:"coworker"`
		Task     string `json:"task"`
		Context  string `json:"context"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", &entity.ToolError{Tool: t.name, Input: arguments, Err: fmt.Errorf("invalid arguments: %w", err)}
	}

	coworker, ok := t.crew.find(t.from, args.Coworker)
	if !ok {
		return "", &entity.ToolError{Tool: t.name, Input: args.Coworker, Err: t.unknownCoworker(args.Coworker)}
	}

	description, err := prompts.Render(t.template, prompts.DelegationData{
		From:    string(t.from),
		Task:    args.Task,
		Context: args.Context,
	})
	if err != nil {
		return "", err
	}

	t.logger.Info("Delegating to coworker", "from", t.from, "to", coworker.Role(), "tool", t.name)

	result, err := coworker.executeDelegated(ctx, entity.Task{
		Name:           entity.TaskDelegated,
		Agent:          coworker.Role(),
		Description:    description,
		ExpectedOutput: delegatedExpectedOutput,
	})
	if err != nil {
		return "", fmt.Errorf("coworker %s: %w", coworker.Role(), err)
	}

	t.logger.Info("Coworker completed", "coworker", coworker.Role(), "iterations", result.Iterations)
	return result.Output, nil
}

func (t *DelegateTool) unknownCoworker(name string) error {
	coworkers := t.crew.Coworkers(t.from)
	roles := make([]string, 0, len(coworkers))
	for _, m := range coworkers {
		roles = append(roles, string(m.Role()))
	}
	return fmt.Errorf("coworker %q not found, it must be one of: %s", name, strings.Join(roles, ", "))
}
