package view

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultDebounce    = 200 * time.Millisecond
	DefaultSettleDelay = 200 * time.Millisecond
)

// Viewport is the presentation layer's camera.
type Viewport interface {
	// Size returns the current viewport size in screen units.
	Size() Size
	// MoveTo pans and zooms to c. It is called from the controller's event
	// loop and must not block on the controller.
	MoveTo(c Camera)
}

// Config configures a [Controller]. Zero values pick defaults.
type Config struct {
	Debounce    time.Duration
	SettleDelay time.Duration
	FocusZoom   float64

	// Viewport receives camera moves after a successful search. Nil
	// disables camera focus.
	Viewport Viewport

	// OnState is called from the event loop with every new state. It must
	// not block on the controller.
	OnState func(State)

	Logger *log.Logger
}

// focusDue fires when the settle delay after a search has elapsed.
type focusDue struct {
	Generation uint64
}

func (focusDue) event() {}

// Controller runs a [Model] against live input.
//
// Run owns all state; the other methods only queue events and never block.
// They are safe to call from any goroutine, before or after Run starts.
// Consecutive queued QueryChanged events collapse into the latest one, so
// typing before Run starts keeps one pending query. Once Run returns,
// posted events are dropped.
type Controller struct {
	model  Model
	cfg    Config
	logger *log.Logger

	mu      sync.Mutex
	queue   []Event
	stopped bool
	wake    chan struct{}

	snapshot atomic.Pointer[State]

	// Owned by the Run goroutine.
	state    State
	debounce *time.Timer
	focus    *time.Timer
}

// NewController returns a controller in the model's initial state.
func NewController(m Model, cfg Config) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.FocusZoom <= 0 {
		cfg.FocusZoom = DefaultFocusZoom
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		model:  m,
		cfg:    cfg,
		logger: logger,
		wake:   make(chan struct{}, 1),
		state:  m.Initial(),
	}
	c.publish()
	return c
}

// State returns the latest snapshot.
func (c *Controller) State() State {
	return *c.snapshot.Load()
}

// Type records the search field's new text.
func (c *Controller) Type(text string) { c.post(QueryChanged{Text: text}) }

// Select opens the details popup for node id.
func (c *Controller) Select(id string) { c.post(NodeSelected{ID: id}) }

// Deselect closes the details popup.
func (c *Controller) Deselect() { c.post(NodeDeselected{}) }

func (c *Controller) post(ev Event) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if n := len(c.queue); n > 0 && isQuery(ev) && isQuery(c.queue[n-1]) {
		c.queue[n-1] = ev
	} else {
		c.queue = append(c.queue, ev)
	}
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func isQuery(ev Event) bool {
	_, ok := ev.(QueryChanged)
	return ok
}

// pending returns the number of queued events not yet processed.
func (c *Controller) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Controller) drain() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	evs := c.queue
	c.queue = nil
	return evs
}

// Run processes events until ctx is cancelled, then stops pending timers and
// returns ctx.Err(). Run must be called at most once.
func (c *Controller) Run(ctx context.Context) error {
	defer c.stopTimers()
	defer func() {
		c.mu.Lock()
		c.stopped = true
		c.queue = nil
		c.mu.Unlock()
	}()

	if c.cfg.OnState != nil {
		c.cfg.OnState(c.state)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
			for _, ev := range c.drain() {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.handle(ev)
			}
		}
	}
}

func (c *Controller) handle(ev Event) {
	prev := c.state

	switch ev := ev.(type) {
	case focusDue:
		c.focusMatch(ev.Generation)
		return
	case QueryChanged:
		c.state = c.model.Apply(c.state, ev)
		c.scheduleSearch(ev.Text, c.state.Generation)
	case SearchSettled:
		if ev.Generation != prev.Generation {
			c.logger.Debug("dropping stale search", "term", ev.Text, "generation", ev.Generation)
			return
		}
		c.state = c.model.Apply(c.state, ev)
		c.logger.Debug("search settled", "term", ev.Text, "phase", c.state.Phase, "nodes", len(c.state.Graph.Nodes))
		if c.state.Phase == Found {
			c.scheduleFocus(c.state.Generation)
		}
	default:
		c.state = c.model.Apply(c.state, ev)
	}
	c.publish()
	if c.cfg.OnState != nil {
		c.cfg.OnState(c.state)
	}
}

// scheduleSearch restarts the debounce timer. Only the latest timer can
// settle a search: an older one that already fired carries a stale
// generation and is dropped by the model.
func (c *Controller) scheduleSearch(text string, gen uint64) {
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.cfg.Debounce, func() {
		c.post(SearchSettled{Text: text, Generation: gen})
	})
}

func (c *Controller) scheduleFocus(gen uint64) {
	if c.cfg.Viewport == nil {
		return
	}
	if c.focus != nil {
		c.focus.Stop()
	}
	c.focus = time.AfterFunc(c.cfg.SettleDelay, func() {
		c.post(focusDue{Generation: gen})
	})
}

// focusMatch moves the viewport onto the matched node, once, if gen is
// still the current search.
func (c *Controller) focusMatch(gen uint64) {
	s := c.state
	if gen != s.Generation || s.Phase != Found || s.Match == nil {
		c.logger.Debug("dropping stale camera move", "generation", gen, "current", s.Generation)
		return
	}
	bounds, ok := s.Graph.NodeBounds(s.Match.NodeID)
	if !ok {
		return
	}
	cam := CenterOn(bounds, c.cfg.Viewport.Size(), c.cfg.FocusZoom)
	c.state = c.model.Apply(s, CameraSettled{Generation: gen, Camera: cam})
	c.cfg.Viewport.MoveTo(cam)
	c.logger.Debug("camera focused", "node", s.Match.Name, "x", cam.X, "y", cam.Y, "zoom", cam.Zoom)

	c.publish()
	if c.cfg.OnState != nil {
		c.cfg.OnState(c.state)
	}
}

func (c *Controller) publish() {
	s := c.state
	c.snapshot.Store(&s)
}

func (c *Controller) stopTimers() {
	if c.debounce != nil {
		c.debounce.Stop()
	}
	if c.focus != nil {
		c.focus.Stop()
	}
}
