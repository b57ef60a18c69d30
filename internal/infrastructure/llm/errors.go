// Package llm holds what the model gateways share.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"marketing-crew/internal/domain/entity"
)

var quotaMarkers = []string{
	"resourceexhausted",
	"resource_exhausted",
	"resource has been exhausted",
	"quota",
	"rate limit",
	"too many requests",
}

// IsQuotaMessage reports whether an error text looks like a usage-limit rejection.
func IsQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WrapError maps a provider failure onto the domain taxonomy. status is the
// HTTP status when the provider exposed one, zero otherwise.
func WrapError(provider string, status int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if status == http.StatusTooManyRequests || IsQuotaMessage(err.Error()) {
		return &entity.QuotaError{Provider: provider, Err: err}
	}
	return fmt.Errorf("%w: %s: %w", entity.ErrModelUnavailable, provider, err)
}
