package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeLLM struct {
	content  string
	err      error
	requests []output.ChatRequest
	deadline bool
}

func (p *probeLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	p.requests = append(p.requests, req)
	_, p.deadline = ctx.Deadline()
	if p.err != nil {
		return nil, p.err
	}
	return &output.ChatResponse{Message: entity.Message{Role: entity.MessageRoleAssistant, Content: p.content}}, nil
}

func TestCheck_OK(t *testing.T) {
	llm := &probeLLM{content: "API is working"}

	result := NewChecker(llm, Options{}).Check(context.Background())

	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, "API is working", result.Response)
	require.Len(t, llm.requests, 1)
	assert.Empty(t, llm.requests[0].Tools)
	assert.Equal(t, probePrompt, llm.requests[0].Messages[0].Content)
	assert.True(t, llm.deadline)
}

func TestCheck_Quota(t *testing.T) {
	llm := &probeLLM{err: &entity.QuotaError{Provider: "gemini", Err: errors.New("429")}}

	result := NewChecker(llm, Options{}).Check(context.Background())

	assert.Equal(t, StatusQuotaExceeded, result.Status)
	assert.ErrorIs(t, result.Err, entity.ErrQuotaExceeded)
}

func TestCheck_OtherFailure(t *testing.T) {
	llm := &probeLLM{err: entity.ErrModelUnavailable}

	result := NewChecker(llm, Options{}).Check(context.Background())

	assert.Equal(t, StatusUnavailable, result.Status)
	assert.Equal(t, "unavailable", result.Status.String())
}

func TestWaitForReset_Countdown(t *testing.T) {
	checker := NewChecker(&probeLLM{}, Options{})
	var slept []time.Duration
	checker.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	var ticks []time.Duration
	err := checker.WaitForReset(context.Background(), func(remaining time.Duration) {
		ticks = append(ticks, remaining)
	})

	require.NoError(t, err)
	assert.Len(t, slept, 10)
	require.Len(t, ticks, 10)
	assert.Equal(t, 300*time.Second, ticks[0])
	assert.Equal(t, 30*time.Second, ticks[9])
}

func TestWaitForReset_Cancelled(t *testing.T) {
	checker := NewChecker(&probeLLM{}, Options{ResetWait: time.Hour, ResetStep: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := checker.WaitForReset(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
