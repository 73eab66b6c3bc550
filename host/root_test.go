package host

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/builder"
	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/testutil"
)

// recordingCanvas keeps every shown frame as a list of drawn regions.
type recordingCanvas struct {
	mu     sync.Mutex
	cur    []string
	frames [][]string
}

func (c *recordingCanvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = nil
}

func (c *recordingCanvas) Draw(_ *Component, r *regionfsm.Region, x, y, w, h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = append(c.cur, fmt.Sprintf("%s %g,%g %gx%g %s", r.Name(), x, y, w, h, r.AssetStatus()))
}

func (c *recordingCanvas) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, c.cur)
}

func (c *recordingCanvas) last() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func newFSM(t *testing.T, d *builder.Doc, opts ...regionfsm.Option) *regionfsm.FSM {
	t.Helper()
	base := []regionfsm.Option{
		regionfsm.WithReporter(diag.NewCollector(nil)),
		regionfsm.WithAssetCache(testutil.NewStubLoader().Cache()),
	}
	m, err := d.Build(append(base, opts...)...)
	require.NoError(t, err)
	return m
}

// echo is a single-region FSM printing every event it sees.
func echo(tag string) *builder.Doc {
	return builder.New().
		Region("button", 0, 0, 5, 5, "").
		State("idle", builder.On(regionfsm.Any, "*", "idle", builder.PrintEvent(tag)))
}

func TestAddRedrawsBackToFront(t *testing.T) {
	canvas := &recordingCanvas{}
	root := New(canvas)

	root.Add(newFSM(t, builder.New().Region("A", 0, 0, 4, 4, "").Region("B", 2, 2, 4, 4, "").State("s")), 0, 0)
	root.Add(newFSM(t, builder.New().Region("C", 1, 1, 2, 2, "").State("s")), 100, 10)

	assert.Equal(t, uint64(2), root.Redraws())
	assert.Equal(t, []string{
		"A 0,0 4x4 none",
		"B 2,2 4x4 none",
		"C 101,11 2x2 none",
	}, canvas.last())
}

func TestOneRedrawPerRound(t *testing.T) {
	stub := testutil.NewStubLoader().Add("a.png", 4, 4).Add("b.png", 4, 4)
	stub.Hold()
	canvas := &recordingCanvas{}
	root := New(canvas)

	m := newFSM(t, builder.New().
		Region("a", 0, 0, 4, 4, "").
		Region("b", 10, 0, 4, 4, "").
		State("idle", builder.On(regionfsm.Press, "a", "done",
			builder.SetImage("a", "a.png"),
			builder.SetImage("b", "b.png"),
		)).
		State("done"),
		regionfsm.WithAssetCache(stub.Cache()), regionfsm.WithPoster(root.Queue()))
	root.Add(m, 0, 0)
	base := root.Redraws()

	root.Press(1, 1)
	assert.Equal(t, base+1, root.Redraws(), "two set_image actions, one redraw")

	root.Press(50, 50)
	assert.Equal(t, base+1, root.Redraws(), "no damage, no redraw")

	stub.Open()
	require.Eventually(t, func() bool { return root.Queue().Len() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 2, root.Flush())
	assert.Equal(t, base+2, root.Redraws(), "two loads, one redraw")
	assert.Equal(t, []string{"a 0,0 4x4 ready", "b 10,0 4x4 ready"}, canvas.last())
}

func TestFlushDrainsPrivateQueues(t *testing.T) {
	stub := testutil.NewStubLoader().Add("a.png", 3, 2)
	root := New(&recordingCanvas{})
	m := newFSM(t, builder.New().AutoRegion("a", 0, 0, "a.png").State("s"), regionfsm.WithAssetCache(stub.Cache()))
	root.Add(m, 0, 0)

	require.Eventually(t, func() bool { return m.AssetQueue().Len() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, root.Flush())
	_, _, w, h := m.Region("a").Bounds()
	assert.Equal(t, []float64{3, 2}, []float64{w, h})
}

func TestDamageOutsideRoundRedrawsImmediately(t *testing.T) {
	canvas := &recordingCanvas{}
	root := New(canvas)
	c := root.Add(newFSM(t, echo("x")), 0, 0)
	base := root.Redraws()

	c.SetPosition(5, 5)
	c.SetPosition(5, 5)
	c.FSM().Region("button").SetSize(1, 1)
	assert.Equal(t, base+2, root.Redraws())
	assert.Equal(t, []string{"button 5,5 1x1 none"}, canvas.last())
	x, y := c.Position()
	assert.Equal(t, []float64{5, 5}, []float64{x, y})
}

func TestPointerSynthesizesLostRelease(t *testing.T) {
	var out bytes.Buffer
	root := New(nil)
	root.Add(newFSM(t, echo("ev"), regionfsm.WithOutput(&out)), 0, 0)

	root.Pointer(1, 1, false)
	root.Pointer(1, 1, true)
	root.Pointer(1, 1, true)
	assert.True(t, root.ButtonDown())
	root.Pointer(50, 50, true)
	// The button came up off the surface; the next report is a release.
	root.Pointer(2, 1, false)
	assert.False(t, root.ButtonDown())
	root.Pointer(60, 60, false)

	assert.Equal(t, "ev enter(button)\n"+
		"ev press(button)\n"+
		"ev exit(button)\n"+
		"ev enter(button)\n"+
		"ev release(button)\n"+
		"ev exit(button)\n", out.String())
}

func TestPointerReleaseOverNothing(t *testing.T) {
	var out bytes.Buffer
	root := New(nil)
	root.Add(newFSM(t, echo("ev"), regionfsm.WithOutput(&out)), 0, 0)

	root.Pointer(1, 1, true)
	root.Pointer(40, 40, false)
	assert.Equal(t, "ev enter(button)\nev press(button)\nev exit(button)\nev release_none\n", out.String())
}

func TestComponentsUseLocalCoordinates(t *testing.T) {
	var out bytes.Buffer
	root := New(nil)
	root.Add(newFSM(t, echo("low"), regionfsm.WithOutput(&out)), 0, 0)
	root.Add(newFSM(t, echo("high"), regionfsm.WithOutput(&out)), 3, 3)

	root.Press(4, 4)
	assert.Equal(t, "high press(button)\nlow press(button)\n", out.String(), "topmost component first")

	out.Reset()
	root.Press(1, 1)
	assert.Equal(t, "low press(button)\n", out.String())

	out.Reset()
	root.Release(7, 7)
	assert.Equal(t, "high release(button)\nlow release_none\n", out.String())
}

func TestSendAndTick(t *testing.T) {
	var out bytes.Buffer
	root := New(nil)
	root.Add(newFSM(t, echo("ev"), regionfsm.WithOutput(&out)), 0, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, root.Send(Sample{Kind: regionfsm.RawMove, X: 1, Y: 1}))
		assert.NoError(t, root.Send(Sample{Pointer: true, X: 1, Y: 1, Down: true}))
		assert.NoError(t, root.Send(Sample{Pointer: true, X: 1, Y: 1, Down: false}))
	}()
	<-done

	assert.Empty(t, out.String(), "nothing runs before the tick")
	root.Tick()
	assert.Equal(t, "ev enter(button)\nev press(button)\nev release(button)\n", out.String())
	assert.Equal(t, uint64(1), root.TickNumber())
}

func TestSendQueueFull(t *testing.T) {
	root := New(nil, WithMaxSamplesPerTick(2))
	require.NoError(t, root.Send(Sample{}))
	require.NoError(t, root.Send(Sample{}))
	assert.ErrorIs(t, root.Send(Sample{}), ErrQueueFull)

	root.Tick()
	assert.NoError(t, root.Send(Sample{}))
}

func TestRunWakesOnAssetLoad(t *testing.T) {
	stub := testutil.NewStubLoader().Add("a.png", 2, 2)
	canvas := &recordingCanvas{}
	root := New(canvas, WithTickRate(time.Hour))

	stub.Hold()
	m := newFSM(t, builder.New().AutoRegion("a", 0, 0, "a.png").State("s"),
		regionfsm.WithAssetCache(stub.Cache()), regionfsm.WithPoster(root.Queue()))
	root.Add(m, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- root.Run(ctx) }()

	stub.Open()
	require.Eventually(t, func() bool {
		frame := canvas.last()
		return len(frame) == 1 && frame[0] == "a 0,0 2x2 ready"
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}
