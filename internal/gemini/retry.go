package gemini

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Retrier wraps a Completer with bounded retries and rate-limit backoff.
// It never returns an error: after exhausting all attempts the caller gets
// ok=false and decides what to do with the unit of work.
type Retrier struct {
	completer     Completer
	maxRetries    int
	retryWait     time.Duration
	rateLimitWait time.Duration
	sleep         func(time.Duration)
	logger        *zap.Logger
}

func NewRetrier(completer Completer, maxRetries int, retryWait, rateLimitWait time.Duration, logger *zap.Logger) *Retrier {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Retrier{
		completer:     completer,
		maxRetries:    maxRetries,
		retryWait:     retryWait,
		rateLimitWait: rateLimitWait,
		sleep:         time.Sleep,
		logger:        logger,
	}
}

// CompleteWithRetry returns the first successful non-empty response. A "429"
// in the failure text means rate limiting and earns the longer backoff.
func (r *Retrier) CompleteWithRetry(ctx context.Context, prompt string) (string, bool) {
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		text, err := r.completer.Complete(ctx, prompt)
		if err == nil && text != "" {
			return text, true
		}

		if err != nil {
			r.logger.Warn("gemini call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			if strings.Contains(err.Error(), "429") {
				r.logger.Info("rate limited, backing off",
					zap.Duration("wait", r.rateLimitWait))
				r.sleep(r.rateLimitWait)
				continue
			}
		} else {
			r.logger.Warn("gemini returned empty response",
				zap.Int("attempt", attempt))
		}
		r.sleep(r.retryWait)
	}
	return "", false
}
