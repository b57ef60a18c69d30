package entity

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("configuration error")
	ErrQuotaExceeded       = errors.New("model quota exceeded")
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrSearchNotConfigured = errors.New("search API key is not configured")
)

// QuotaError marks a model call rejected for usage limits. Callers should wait
// and retry rather than fix configuration.
type QuotaError struct {
	Provider string
	Err      error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrQuotaExceeded, e.Provider, e.Err)
}

func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}

// RunError is the single failure reported for an aborted pipeline run.
type RunError struct {
	RunID string
	Stage StageName
	Task  TaskName
	Err   error
}

func (e *RunError) Error() string {
	where := string(e.Stage)
	if e.Task != "" {
		where += "/" + string(e.Task)
	}
	if where == "" {
		return fmt.Sprintf("run %s failed: %v", e.RunID, e.Err)
	}
	return fmt.Sprintf("run %s failed at %s: %v", e.RunID, where, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
