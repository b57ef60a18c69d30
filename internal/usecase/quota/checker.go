package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
)

const (
	probePrompt = "Say 'API is working' in exactly 3 words."

	DefaultProbeTimeout = 10 * time.Second
	DefaultResetWait    = 300 * time.Second
	DefaultResetStep    = 30 * time.Second
)

type Status int

const (
	StatusOK Status = iota
	StatusQuotaExceeded
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusQuotaExceeded:
		return "quota_exceeded"
	default:
		return "unavailable"
	}
}

type Result struct {
	Status   Status
	Response string
	Err      error
}

type Options struct {
	ProbeTimeout time.Duration
	ResetWait    time.Duration
	ResetStep    time.Duration
	Logger       output.LoggerPort
}

func DefaultOptions() Options {
	return Options{
		ProbeTimeout: DefaultProbeTimeout,
		ResetWait:    DefaultResetWait,
		ResetStep:    DefaultResetStep,
	}
}

// Checker probes the model with a trivial prompt to tell a spent quota apart
// from other failures before a full run is attempted.
type Checker struct {
	llm   output.LLMPort
	opts  Options
	sleep func(ctx context.Context, d time.Duration) error
}

func NewChecker(llm output.LLMPort, opts Options) *Checker {
	defaults := DefaultOptions()
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = defaults.ProbeTimeout
	}
	if opts.ResetWait <= 0 {
		opts.ResetWait = defaults.ResetWait
	}
	if opts.ResetStep <= 0 {
		opts.ResetStep = defaults.ResetStep
	}
	return &Checker{llm: llm, opts: opts, sleep: sleepContext}
}

func (c *Checker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
	defer cancel()

	resp, err := c.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{{Role: entity.MessageRoleUser, Content: probePrompt}},
	})
	if err != nil {
		status := StatusUnavailable
		if errors.Is(err, entity.ErrQuotaExceeded) {
			status = StatusQuotaExceeded
		}
		if c.opts.Logger != nil {
			c.opts.Logger.Warn("Quota check failed", "status", status, "error", err)
		}
		return Result{Status: status, Err: err}
	}

	if c.opts.Logger != nil {
		c.opts.Logger.Info("Quota check passed", "response_len", len(resp.Message.Content))
	}
	return Result{Status: StatusOK, Response: resp.Message.Content}
}

// WaitForReset counts down the reset window, reporting the remaining time
// before each step.
func (c *Checker) WaitForReset(ctx context.Context, onTick func(remaining time.Duration)) error {
	for remaining := c.opts.ResetWait; remaining > 0; remaining -= c.opts.ResetStep {
		if onTick != nil {
			onTick(remaining)
		}
		step := c.opts.ResetStep
		if step > remaining {
			step = remaining
		}
		if err := c.sleep(ctx, step); err != nil {
			return fmt.Errorf("waiting for quota reset: %w", err)
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
