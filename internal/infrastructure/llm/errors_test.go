package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"marketing-crew/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestWrapError_QuotaByStatus(t *testing.T) {
	err := WrapError("gemini", http.StatusTooManyRequests, errors.New("too many"))

	assert.ErrorIs(t, err, entity.ErrQuotaExceeded)
	var qe *entity.QuotaError
	assert.ErrorAs(t, err, &qe)
	assert.Equal(t, "gemini", qe.Provider)
}

func TestWrapError_QuotaByMessage(t *testing.T) {
	for _, msg := range []string{
		"googleapi: Error 429: Resource has been exhausted",
		"rpc error: code = ResourceExhausted desc = quota",
		"You exceeded your current quota",
	} {
		err := WrapError("gemini", 0, errors.New(msg))
		assert.ErrorIs(t, err, entity.ErrQuotaExceeded, msg)
	}
}

func TestWrapError_PortNumbersAreNotQuota(t *testing.T) {
	for _, msg := range []string{
		"dial tcp 10.0.0.1:4290: connect: connection refused",
		"request 1429 failed: EOF",
	} {
		err := WrapError("gemini", 0, errors.New(msg))
		assert.ErrorIs(t, err, entity.ErrModelUnavailable, msg)
		assert.NotErrorIs(t, err, entity.ErrQuotaExceeded, msg)
		assert.False(t, IsQuotaMessage(msg), msg)
	}
}

func TestWrapError_OtherFailures(t *testing.T) {
	err := WrapError("openai", http.StatusUnauthorized, errors.New("invalid api key"))

	assert.ErrorIs(t, err, entity.ErrModelUnavailable)
	assert.NotErrorIs(t, err, entity.ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestWrapError_PassesCancellationThrough(t *testing.T) {
	err := WrapError("openai", 0, fmt.Errorf("call: %w", context.Canceled))

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, entity.ErrModelUnavailable)
	assert.Nil(t, WrapError("openai", 0, nil))
}
