package pipeline

import (
	"context"

	"marketing-crew/internal/application/port/output"
)

var _ output.LLMPort = (*throttledLLM)(nil)

// throttledLLM makes every model call of a stage wait on the stage limiter.
type throttledLLM struct {
	llm     output.LLMPort
	limiter output.RateLimiter
}

func (t *throttledLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.llm.Chat(ctx, req)
}
