package agent

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/application/service"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/prompts"
)

const maxObservationLen = 20000

// Agent runs tasks for one role with a reason/act loop: the model either calls
// tools, whose observations are fed back, or answers in plain text.
type Agent struct {
	profile    entity.AgentProfile
	llm        output.LLMPort
	tools      []output.ToolPort
	delegation []output.ToolPort
	logger     output.LoggerPort
	observer   output.StepObserver
}

func (a *Agent) Profile() entity.AgentProfile {
	return a.profile
}

func (a *Agent) Role() entity.Role {
	return a.profile.Role
}

// Tools lists every tool the model is offered when the agent runs a pipeline task.
func (a *Agent) Tools() []output.ToolPort {
	all := make([]output.ToolPort, 0, len(a.tools)+len(a.delegation))
	all = append(all, a.tools...)
	return append(all, a.delegation...)
}

// Execute runs a task until the model gives a final answer. When the iteration
// cap is reached the model is asked once more, without tools, for its best
// answer and the result is marked exhausted.
func (a *Agent) Execute(ctx context.Context, task entity.Task) (*entity.TaskResult, error) {
	return a.run(ctx, task, a.Tools())
}

// executeDelegated runs work handed over by a coworker. Delegation tools are
// withheld so requests cannot bounce around the crew.
func (a *Agent) executeDelegated(ctx context.Context, task entity.Task) (*entity.TaskResult, error) {
	return a.run(ctx, task, a.tools)
}

func (a *Agent) run(ctx context.Context, task entity.Task, tools []output.ToolPort) (*entity.TaskResult, error) {
	logger := a.logger.WithFields(map[string]any{"agent": a.profile.Role, "task": task.Name})
	logger.Info("Agent executing task", "max_iterations", a.profile.MaxIterations)

	// Rendered per run: delegation tool descriptions list the crew as it is now.
	systemPrompt, err := prompts.GenerateAgentPrompt(promptData(a.profile, tools))
	if err != nil {
		return nil, err
	}
	taskPrompt, err := prompts.GenerateTaskPrompt(task)
	if err != nil {
		return nil, err
	}

	messages := []entity.Message{
		{Role: entity.MessageRoleSystem, Content: systemPrompt},
		{Role: entity.MessageRoleUser, Content: taskPrompt},
	}

	toolDefs := service.Definitions(tools)
	byName := make(map[entity.ToolName]output.ToolPort, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}

	maxIter := a.profile.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	for iteration := 1; iteration <= maxIter; iteration++ {
		logger.Debug("Starting iteration", "iteration", iteration)

		resp, err := a.llm.Chat(ctx, output.ChatRequest{
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			a.emit(ctx, task, iteration, entity.StepFinalAnswer, "", resp.Message.Content)
			logger.Info("Agent finished task", "iterations", iteration)
			return &entity.TaskResult{
				Task:       task.Name,
				Agent:      a.profile.Role,
				Output:     resp.Message.Content,
				Iterations: iteration,
			}, nil
		}

		if resp.Message.Content != "" {
			a.emit(ctx, task, iteration, entity.StepThought, "", resp.Message.Content)
		}

		for _, tc := range resp.Message.ToolCalls {
			a.emit(ctx, task, iteration, entity.StepToolCall, tc.Name, tc.Arguments)

			observation, err := a.executeTool(ctx, logger, byName, tc)
			if err != nil {
				return nil, err
			}
			a.emit(ctx, task, iteration, entity.StepObservation, tc.Name, observation)

			messages = append(messages, entity.Message{
				Role:       entity.MessageRoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	logger.Warn("Iteration limit reached, forcing final answer", "max_iterations", maxIter)

	messages = append(messages, entity.Message{Role: entity.MessageRoleUser, Content: prompts.ForceFinalAnswer()})
	resp, err := a.llm.Chat(ctx, output.ChatRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	a.emit(ctx, task, maxIter+1, entity.StepFinalAnswer, "", resp.Message.Content)
	return &entity.TaskResult{
		Task:       task.Name,
		Agent:      a.profile.Role,
		Output:     resp.Message.Content,
		Iterations: maxIter + 1,
		Exhausted:  true,
	}, nil
}

// executeTool turns tool failures into observations. Only errors that are not
// *entity.ToolError, such as a coworker hitting the model quota, abort the task.
func (a *Agent) executeTool(
	ctx context.Context,
	logger output.LoggerPort,
	tools map[entity.ToolName]output.ToolPort,
	tc entity.ToolCall,
) (string, error) {
	tool, ok := tools[entity.ToolName(tc.Name)]
	if !ok {
		logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name), nil
	}

	logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		var toolErr *entity.ToolError
		if errors.As(err, &toolErr) {
			logger.Warn("Tool returned error", "name", tc.Name, "error", err)
			return toolErr.Error(), nil
		}
		logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "", fmt.Errorf("tool %s: %w", tc.Name, err)
	}

	result = truncateObservation(result)

	logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result, nil
}

// truncateObservation caps an observation at maxObservationLen bytes without
// splitting a multibyte rune.
func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}

func (a *Agent) emit(ctx context.Context, task entity.Task, iteration int, kind entity.StepKind, tool, content string) {
	if a.observer == nil || !a.profile.Verbose {
		return
	}
	a.observer.OnStep(ctx, entity.AgentStep{
		Agent:     a.profile.Role,
		Task:      task.Name,
		Iteration: iteration,
		Kind:      kind,
		Tool:      tool,
		Content:   content,
	})
}
