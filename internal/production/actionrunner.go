package production

import (
	"io"
	"log/slog"
	"time"

	"github.com/comalice/regionfsm"
)

// LoggingActionRunner wraps an ActionRunner and logs around execution.
type LoggingActionRunner struct {
	inner  regionfsm.ActionRunner
	logger *slog.Logger
}

// NewLoggingActionRunner creates a LoggingActionRunner wrapping inner. A nil
// inner runs actions with regionfsm.DefaultActionRunner; a nil logger uses
// slog.Default().
func NewLoggingActionRunner(inner regionfsm.ActionRunner, logger *slog.Logger) *LoggingActionRunner {
	if inner == nil {
		inner = regionfsm.DefaultActionRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingActionRunner{inner: inner, logger: logger}
}

// Run logs before and after delegating to the inner runner.
func (r *LoggingActionRunner) Run(a *regionfsm.Action, ev regionfsm.Event, out io.Writer) {
	r.logger.Debug("executing action", "action", a.String(), "event", ev.String(), "inert", a.Inert())
	start := time.Now()
	r.inner.Run(a, ev, out)
	r.logger.Debug("action completed", "action", a.String(), "elapsed", time.Since(start))
}
