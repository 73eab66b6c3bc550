// Package regionfsm runs interactive on-screen components whose behavior is a
// declarative finite state machine over named rectangular regions.
//
// A document declares regions and states. Each state holds transitions in
// priority order; a transition pairs an event spec (press, release, enter,
// exit, ... on a region) with a target state and a list of actions that
// change region images or print. Build coerces a loosely typed document,
// creates the regions and states, and binds every name in one pass.
// Problems are reported to a diag.Reporter and never abort the build.
//
// A Dispatcher translates raw pointer samples into high-level events and
// steps the FSM with each one in a fixed order:
//
//	m, _ := regionfsm.Build(loose)
//	d := regionfsm.NewDispatcher(m)
//	d.Move(10, 4)    // enter(button)
//	d.Press(10, 4)   // press(button)
//	d.Release(10, 4) // release(button)
//
// Everything in this package runs on one goroutine. Image loads happen in the
// background and come back as continuations posted to an assets.Poster,
// which the host drains on that same goroutine.
package regionfsm
