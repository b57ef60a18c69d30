package output

import (
	"context"

	"marketing-crew/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages []entity.Message
	Tools    []entity.ToolDefinition
}

type ChatResponse struct {
	Message entity.Message
}
