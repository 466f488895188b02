package common

import (
	"time"
)

// Stopwatch keeps track of time. Give it a timeout, start it,
// and ask it whether the timeout has been reached
type Stopwatch struct {
	Timeout   time.Duration
	startTime time.Time
	Running   bool
}

func NewStopwatch(timeout time.Duration) Stopwatch {
	return Stopwatch{timeout, time.Time{}, false}
}

func (s *Stopwatch) Start() {
	s.Running = true
	s.startTime = time.Now()
}

func (s *Stopwatch) Stop() {
	s.Running = false
}

// Stopped reports whether the timeout has been reached, together with
// the time elapsed beyond the timeout. A stopwatch that was never
// started counts as stopped
func (s *Stopwatch) Stopped() (bool, time.Duration) {
	if !s.Running {
		return true, 0
	}
	overshoot := time.Since(s.startTime.Add(s.Timeout))
	return overshoot >= 0, overshoot
}
