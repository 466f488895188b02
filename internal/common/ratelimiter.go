package common

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RateLimiter decides if an outgoing request is allowed under a set of
// restrictions, keeping a history of the requests already served.
// When the remote service reports a rate limit of its own, the limiter
// additionally backs off for the longest restriction window
type RateLimiter struct {
	mu           sync.Mutex
	restrictions []Restriction
	history      []time.Time
	window       time.Duration // longest restriction window
	cooldown     Stopwatch     // running after a remote 429
}

func NewRateLimiter(restrictions []Restriction) *RateLimiter {
	rl := RateLimiter{}
	rl.restrictions = append(rl.restrictions, restrictions...)
	for _, restriction := range restrictions {
		if restriction.Duration > rl.window {
			rl.window = restriction.Duration
		}
	}
	rl.cooldown = NewStopwatch(rl.window)
	return &rl
}

// Wait blocks until the restrictions allow a new request, then records
// it in the history. Returns early if the context is cancelled
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		now := time.Now()
		rl.trim(now)
		analysis := rl.analyse(now)
		if stopped, _ := rl.cooldown.Stopped(); !stopped {
			// Remote told us to back off; wait out the cooldown
			analysis.Allowed = false
			if analysis.Wait < time.Second {
				analysis.Wait = time.Second
			}
		}
		if analysis.Allowed {
			rl.history = append(rl.history, now)
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		log.Debug().Dur("wait", analysis.Wait).Msg("Rate limiter delaying request")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(analysis.Wait):
		}
	}
}

// ReceivedRateLimit tells the limiter the remote service returned 429,
// so every request backs off for a full restriction window
func (rl *RateLimiter) ReceivedRateLimit() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cooldown.Start()
}

// Trim the current history, leaving only the requests
// that are young enough to be affected by at least one restriction
func (rl *RateLimiter) trim(now time.Time) {
	index := 0
	for i := len(rl.history) - 1; i >= 0; i-- {
		if now.Sub(rl.history[i]) > rl.window {
			index = i + 1
			break
		}
	}
	rl.history = rl.history[index:]
}

// Merge the analyses of all the restrictions: allowed only if every
// restriction allows, waiting for the most demanding one
func (rl *RateLimiter) analyse(now time.Time) Analysis {
	merged := Analysis{Allowed: true}
	for _, restriction := range rl.restrictions {
		analysis := restriction.Analyse(rl.history, now)
		merged.Allowed = merged.Allowed && analysis.Allowed
		if analysis.Wait > merged.Wait {
			merged.Wait = analysis.Wait
		}
	}
	return merged
}
