// Package view drives the interactive diagram: search debouncing, graph
// rebuilds, node selection and camera focus.
//
// # State and events
//
// All view state lives in one immutable [State] value. It only changes by
// applying an [Event] through [Model.Apply], a pure function:
//
//	s := m.Initial()
//	s = m.Apply(s, view.QueryChanged{Text: "noah"})
//	s = m.Apply(s, view.SearchSettled{Text: "noah", Generation: s.Generation})
//	// s.Phase == view.Found, s.Graph rooted at Noah
//
// Every QueryChanged bumps State.Generation. Events that carry a generation
// (SearchSettled, CameraSettled) are dropped when it is no longer current, so
// a late debounce or camera timer cannot overwrite a newer search.
//
// # Controller
//
// [Controller] wraps a Model with the timing a live UI needs. Run starts a
// single event loop goroutine that owns the State; Type, Select and Deselect
// post events to it. Keystrokes are debounced, and after a successful search
// the controller waits for the presentation layer to settle before moving
// the [Viewport] onto the matched node.
package view
