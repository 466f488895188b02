package common

import (
	"time"

	"github.com/rs/zerolog/log"
)

// TimedExecutor runs a named job at most once per period. The bot's
// scheduler ticks it frequently; the job only fires once its period
// has elapsed since the previous run
type TimedExecutor struct {
	name      string
	stopwatch Stopwatch
	task      func()
}

func NewTimedExecutor(name string, period time.Duration, task func()) TimedExecutor {
	return TimedExecutor{name: name, stopwatch: NewStopwatch(period), task: task}
}

// Execute fires the job if its period has elapsed and reports whether
// it did. A freshly created executor fires on the first call
func (te *TimedExecutor) Execute() bool {
	if stopped, _ := te.stopwatch.Stopped(); !stopped {
		return false
	}
	te.stopwatch.Start()
	log.Debug().Str("job", te.name).Msg("Running scheduled job")
	te.task()
	return true
}

// Name identifies the job in logs
func (te *TimedExecutor) Name() string {
	return te.name
}
