// Package host is a reference root collaborator for regionfsm components.
//
// A Root owns a Canvas and a list of components, each an FSM with its own
// Dispatcher placed at an offset on the canvas. It turns native pointer
// reports into raw press/move/release samples, runs every FSM call on one
// goroutine, and coalesces damage so each round ends in at most one redraw.
//
// # Rounds
//
// Every input sample, Flush and Tick runs as a round. Damage raised inside a
// round (by a transition's set_image action, a finished image load, a
// geometry change) only marks the root dirty; the canvas is redrawn once when
// the round ends. Damage raised outside any round redraws immediately.
//
// # Threads
//
// Press, Move, Release, Pointer, Flush, Tick and Redraw must be called from
// the goroutine that owns the root. Other goroutines hand samples over with
// Send; they are processed in arrival order by the next Tick. Run drives Tick
// from a ticker and wakes early when an image load finishes:
//
//	root := host.New(canvas)
//	m, _ := regionfsm.Build(loose, regionfsm.WithPoster(root.Queue()))
//	root.Add(m, 0, 0)
//	go root.Run(ctx)
//	root.Send(host.Sample{Pointer: true, X: 3, Y: 1, Down: true})
//
// # Lost releases
//
// Pointer tracks the button state. A report with the button up while the
// root believes it is down, as happens when the release occurred off the
// surface, produces a release at the reported point.
package host
