package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/host"
	"github.com/comalice/regionfsm/internal/production"
)

// app runs one FSM document on a terminal screen. Everything runs on the
// goroutine calling run; image loads wake it with an interrupt event.
type app struct {
	screen tcell.Screen
	root   *host.Root
	comp   *host.Component
	logger *slog.Logger

	output *outputLog
	steps  chan regionfsm.StepRecord
	pub    *production.ChannelPublisher
	last   string
}

func newApp(cfg Config, screen tcell.Screen, loose any, logger *slog.Logger, reporter diag.Reporter, cache *assets.Cache) (*app, error) {
	a := &app{
		screen: screen,
		logger: logger,
		output: newOutputLog(cfg.OutputLines, logger),
		steps:  make(chan regionfsm.StepRecord, 64),
	}
	a.pub = production.NewChannelPublisher(a.steps)

	queue := assets.NewQueue(func() {
		if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			logger.Debug("wake dropped", "err", err)
		}
	})
	canvas := &cellCanvas{screen: screen, overlay: a.drawOverlay}
	a.root = host.New(canvas, host.WithLogger(logger), host.WithQueue(queue))

	m, err := regionfsm.Build(loose,
		regionfsm.WithReporter(reporter),
		regionfsm.WithLogger(logger),
		regionfsm.WithAssetCache(cache),
		regionfsm.WithPoster(queue),
		regionfsm.WithOutput(a.output),
		regionfsm.WithPublisher(a.pub),
		regionfsm.WithActionRunner(production.NewLoggingActionRunner(nil, logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	logger.Info("fsm built", "fsm", m.ID(), "regions", len(m.Regions()), "states", len(m.States()), "diagnostics", len(m.Diagnostics()))

	a.comp = a.root.Add(m, float64(cfg.OriginX), float64(cfg.OriginY))
	return a, nil
}

func (a *app) fsm() *regionfsm.FSM { return a.comp.FSM() }

// run polls screen events until the user quits or the screen is finalized.
func (a *app) run() {
	a.root.Redraw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.handle(ev) {
			return
		}
	}
}

// handle processes one screen event. It returns false when the app should
// exit.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.root.Redraw()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.fsm().Reset()
			a.last = "reset"
			a.root.Redraw()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.root.Pointer(float64(x), float64(y), ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventInterrupt:
		a.root.Flush()
	}

	if a.collectSteps() || a.output.takeDirty() {
		a.root.Redraw()
	}
	return true
}

// collectSteps drains published step records and reports whether any
// arrived.
func (a *app) collectSteps() bool {
	got := false
	for {
		select {
		case rec := <-a.steps:
			a.last = fmt.Sprintf("%s: %s -> %s", rec.Event, rec.From, rec.To)
			got = true
		default:
			return got
		}
	}
}

func (a *app) drawOverlay(s tcell.Screen) {
	w, h := s.Size()
	if h == 0 {
		return
	}

	state := "-"
	if cur := a.fsm().Current(); cur != nil {
		state = cur.Name()
	}
	status := fmt.Sprintf(" state: %s  last: %s  [q]uit [r]eset", state, a.last)
	for x := 0; x < w; x++ {
		s.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	drawText(s, 0, h-1, w, status, styleStatus)

	lines := a.output.Lines()
	for i, line := range lines {
		row := h - 1 - len(lines) + i
		if row < 0 {
			continue
		}
		drawText(s, 1, row, w, line, styleOutput)
	}
}

// outputLog keeps the last lines written by print actions and mirrors each
// line to the logger.
type outputLog struct {
	max     int
	lines   []string
	partial string
	dirty   bool
	logger  *slog.Logger
}

var _ io.Writer = (*outputLog)(nil)

func newOutputLog(max int, logger *slog.Logger) *outputLog {
	return &outputLog{max: max, logger: logger}
}

func (l *outputLog) Write(p []byte) (int, error) {
	parts := strings.Split(l.partial+string(p), "\n")
	l.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		l.logger.Info("print", "line", line)
		l.lines = append(l.lines, line)
	}
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append([]string(nil), l.lines[over:]...)
	}
	l.dirty = true
	return len(p), nil
}

// Lines returns the kept lines, oldest first.
func (l *outputLog) Lines() []string { return l.lines }

func (l *outputLog) takeDirty() bool {
	d := l.dirty
	l.dirty = false
	return d
}
