// Package diag carries the diagnostics raised while decoding, binding and
// running region state machines.
//
// Nothing in this module treats a malformed document as fatal. Problems are
// described by a Diagnostic and handed to a Reporter; the Reporter's Policy
// decides whether they are dropped, logged, logged with detail, or escalated
// back to the caller.
package diag

import (
	"fmt"
	"log/slog"
	"sync"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// Schema is a wrong primitive type, unknown enumerated value or missing field.
	Schema Kind = iota
	// Reference is a name that did not resolve to a live region or state.
	Reference
	// Duplicate is a repeated region or state name.
	Duplicate
	// Asset is a failed asset load.
	Asset
)

func (k Kind) String() string {
	switch k {
	case Schema:
		return "schema"
	case Reference:
		return "reference"
	case Duplicate:
		return "duplicate"
	case Asset:
		return "asset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Diagnostic describes one recovered problem.
// Path locates the offending field in the document, e.g. "states[1].transitions[0].target".
type Diagnostic struct {
	Kind    Kind
	Path    string
	Message string
	Value   any
}

func (d Diagnostic) Error() string {
	if d.Path == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Path, d.Message)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Policy decides what a Sink does with a diagnostic.
type Policy int

const (
	Drop Policy = iota
	Log
	LogDetail
	Escalate
)

func (p Policy) String() string {
	switch p {
	case Drop:
		return "drop"
	case Log:
		return "log"
	case LogDetail:
		return "detail"
	case Escalate:
		return "escalate"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps the names printed by Policy.String back to policies.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "drop":
		return Drop, nil
	case "log", "":
		return Log, nil
	case "detail":
		return LogDetail, nil
	case "escalate":
		return Escalate, nil
	}
	return Log, fmt.Errorf("unknown diagnostic policy %q", s)
}

// PolicyOf returns the policy of r when it exposes one, and Log otherwise.
func PolicyOf(r Reporter) Policy {
	if p, ok := r.(interface{ Policy() Policy }); ok {
		return p.Policy()
	}
	return Log
}

// Sink applies a Policy, logging through slog.
type Sink struct {
	policy Policy
	logger *slog.Logger
}

// NewSink creates a Sink. A nil logger means slog.Default().
func NewSink(policy Policy, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{policy: policy, logger: logger}
}

func (s *Sink) Policy() Policy { return s.policy }

func (s *Sink) Report(d Diagnostic) {
	switch s.policy {
	case Drop:
	case Log:
		s.logger.Warn(d.Error())
	case LogDetail:
		s.logger.Warn(d.Message, "kind", d.Kind.String(), "path", d.Path, "value", d.Value)
	case Escalate:
		s.logger.Error(d.Message, "kind", d.Kind.String(), "path", d.Path, "value", d.Value)
	}
}

var (
	defaultMu       sync.RWMutex
	defaultReporter Reporter = NewSink(Log, nil)
)

// Default returns the process-wide reporter used when none is injected.
func Default() Reporter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultReporter
}

// SetDefault swaps the process-wide reporter and returns the previous one.
// A nil r restores a Log sink on slog.Default().
func SetDefault(r Reporter) Reporter {
	if r == nil {
		r = NewSink(Log, nil)
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultReporter
	defaultReporter = r
	return prev
}
