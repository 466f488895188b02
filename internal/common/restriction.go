package common

import "time"

// A restriction means that only the specified number of requests
// are allowed for a specific time duration
type Restriction struct {
	Requests int
	Duration time.Duration
}

// Analysis of a request against the current history: whether the
// request is allowed right now, and if not, the minimal time to wait
type Analysis struct {
	Allowed bool
	Wait    time.Duration
}

// Analyse the recent history of requests and find out
// if a new request at the current time should be allowed or not
func (rest *Restriction) Analyse(history []time.Time, now time.Time) Analysis {

	// Compute the number of requests that have been served in my duration.
	// Start counting from the end.
	// If one request is too old, the rest will be too
	count := 0
	for i := len(history) - 1; i >= 0; i-- {
		if now.Sub(history[i]) > rest.Duration {
			break
		}
		count++
	}
	if count < rest.Requests {
		return Analysis{Allowed: true}
	}

	// The request that has to expire before a new one is allowed
	oldest := history[len(history)-count]
	return Analysis{Allowed: false, Wait: oldest.Add(rest.Duration).Sub(now)}
}
