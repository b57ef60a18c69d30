package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketing-crew/internal/application/port/output"

	"golang.org/x/time/rate"
)

var _ output.RateLimiter = (*Limiter)(nil)

// Limiter caps calls per minute. Callers over the cap wait; they are never
// rejected unless their context ends first.
//
// Two rules apply together: calls are spaced at least minute/rpm apart, and a
// window opened by the first call admits at most rpm calls until a minute has
// passed. No 60s span ever sees more than rpm calls.
type Limiter struct {
	rpm     int
	limiter *rate.Limiter

	mu          sync.Mutex
	windowStart time.Time
	windowCalls int
	total       int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPerMinute allows rpm calls per minute. rpm <= 0 disables the cap.
func NewPerMinute(rpm int) *Limiter {
	l := &Limiter{
		rpm:   rpm,
		now:   time.Now,
		sleep: sleepContext,
	}
	if rpm > 0 {
		l.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	}
	return l
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l.rpm <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		l.mu.Lock()
		l.total++
		l.mu.Unlock()
		return nil
	}

	for {
		l.mu.Lock()
		now := l.now()
		if l.windowStart.IsZero() || now.Sub(l.windowStart) >= time.Minute {
			l.windowStart = now
			l.windowCalls = 0
		}

		if l.windowCalls >= l.rpm {
			wait := l.windowStart.Add(time.Minute).Sub(now)
			l.mu.Unlock()
			if err := l.sleep(ctx, wait); err != nil {
				return fmt.Errorf("rate limit wait: %w", err)
			}
			continue
		}

		reservation := l.limiter.ReserveN(now, 1)
		delay := reservation.DelayFrom(now)
		l.windowCalls++
		l.total++
		l.mu.Unlock()

		if delay <= 0 {
			return nil
		}
		if err := l.sleep(ctx, delay); err != nil {
			l.mu.Lock()
			reservation.CancelAt(l.now())
			l.windowCalls--
			l.total--
			l.mu.Unlock()
			return fmt.Errorf("rate limit wait: %w", err)
		}
		return nil
	}
}

type Stats struct {
	Total       int
	WindowCalls int
	WindowStart time.Time
}

func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Total:       l.total,
		WindowCalls: l.windowCalls,
		WindowStart: l.windowStart,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
