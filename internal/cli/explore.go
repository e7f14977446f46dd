package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/config"
	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/pipeline"
	"github.com/matzehuels/descendants/pkg/session"
	"github.com/matzehuels/descendants/pkg/view"
)

// =============================================================================
// Command
// =============================================================================

type exploreOpts struct {
	logFile string
	output  string // base path for exported SVGs
	legend  bool
	resume  bool // start from the last saved session
}

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOpts{legend: true}
	cmd := &cobra.Command{
		Use:   "explore [name]",
		Short: "Explore the tree interactively in the terminal",
		Long: `Explore the family tree in the terminal.

Type a name into the search box to narrow the diagram to the first person
whose name contains it and their descendants. Select a person to see their
lineage. The mouse pans, zooms and selects where the terminal supports it.`,
		Example: `  descendants explore
  descendants explore abraham --log-file explore.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), termArg(args), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file (the terminal is taken by the explorer)")
	f.StringVarP(&opts.output, "output", "o", "", "base path for SVGs saved with 's'")
	f.BoolVar(&opts.legend, "legend", opts.legend, "show the legend panel at start")
	f.BoolVar(&opts.resume, "resume", false, "start from the search and view of the last session")

	defaults := config.Default()
	f.Duration("debounce", defaults.Debounce, "delay after the last keystroke before searching")
	f.Duration("settle-delay", defaults.SettleDelay, "delay before the camera moves to a match")
	f.Float64("focus-zoom", defaults.FocusZoom, "zoom level when focusing a match")
	addLayoutFlags(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, term string, eo exploreOpts) error {
	ds, err := pipeline.LoadDataset(c.Config.Data)
	if err != nil {
		return err
	}

	logger, closeLog, err := exploreLogger(eo.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := c.pipelineOptions("")
	opts.Logger = logger
	model := view.NewModel(ds.Root, opts.GraphOptions()...)

	vp := newTeaViewport()
	ctrl := view.NewController(model, view.Config{
		Debounce:    c.Config.Debounce,
		SettleDelay: c.Config.SettleDelay,
		FocusZoom:   c.Config.FocusZoom,
		Viewport:    vp,
		OnState:     func(view.State) { vp.wake() },
		Logger:      logger,
	})

	store, err := session.NewFileStore("")
	if err != nil {
		logger.Warn("sessions disabled", "err", err)
	}
	var resumed *session.Session
	if eo.resume && term == "" && store != nil {
		resumed = c.loadSession(ctx, store, logger)
		if resumed != nil {
			term = resumed.Query
		}
	}

	m := newExploreModel(ctrl, vp, eo)
	m.opts = opts
	if resumed != nil {
		m.restore(resumed)
	}
	if term != "" {
		m.input.SetValue(term)
		m.focus = focusDiagram
		m.input.Blur()
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	go vp.pump(ctx, p.Send)
	go func() {
		if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("controller stopped", "err", err)
		}
	}()
	if term != "" {
		ctrl.Type(term)
	}

	logger.Info("explore started", "nodes", len(ctrl.State().Graph.Nodes), "term", term)
	final, err := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	if err != nil && !interrupted {
		return fmt.Errorf("explore: %w", err)
	}
	if fm, ok := final.(exploreModel); ok && store != nil {
		if err := store.Set(context.Background(), fm.session(c.Config.Data)); err != nil {
			logger.Warn("save session", "err", err)
		}
	}
	return nil
}

// loadSession returns the saved session if it was taken over the same
// dataset.
func (c *CLI) loadSession(ctx context.Context, store session.Store, logger *log.Logger) *session.Session {
	sess, err := store.Get(ctx, session.DefaultID)
	if err != nil {
		logger.Warn("load session", "err", err)
		return nil
	}
	if sess == nil || sess.Data != c.Config.Data {
		return nil
	}
	logger.Debug("resuming session", "query", sess.Query, "saved", sess.SavedAt)
	return sess
}

// exploreLogger logs to path, or nowhere when path is empty.
func exploreLogger(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		return newLogger(io.Discard, level), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), func() { _ = f.Close() }, nil
}

// =============================================================================
// Viewport bridge
// =============================================================================

// refreshMsg tells the model to pull the controller's latest state.
type refreshMsg struct{}

// savedMsg reports an SVG export.
type savedMsg struct {
	path string
	err  error
}

// teaViewport is the controller's view of the terminal diagram area.
//
// The controller never talks to the program directly: state changes and
// camera moves only set a wake flag, and pump turns wakes into refreshMsgs.
// Bursts coalesce into one refresh, and the controller never waits on the
// UI.
type teaViewport struct {
	mu   sync.Mutex
	size view.Size
	ch   chan struct{}
}

func newTeaViewport() *teaViewport {
	return &teaViewport{ch: make(chan struct{}, 1)}
}

func (v *teaViewport) Size() view.Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// MoveTo only wakes the UI; the camera itself travels in the state.
func (v *teaViewport) MoveTo(view.Camera) { v.wake() }

func (v *teaViewport) setCells(w, h int) {
	v.mu.Lock()
	v.size = view.Size{W: float64(w) * cellW, H: float64(h) * cellH}
	v.mu.Unlock()
}

func (v *teaViewport) wake() {
	select {
	case v.ch <- struct{}{}:
	default:
	}
}

func (v *teaViewport) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-v.ch:
			send(refreshMsg{})
		}
	}
}

// =============================================================================
// Model
// =============================================================================

type focusArea int

const (
	focusSearch focusArea = iota
	focusDiagram
)

const (
	legendWidth = 26
	zoomStep    = 1.25
	// diagramTop is the first screen line of the diagram: search box and
	// banner sit above it.
	diagramTop = 2
)

type exploreKeys struct {
	Focus  key.Binding
	Search key.Binding
	Pan    key.Binding
	Zoom   key.Binding
	Next   key.Binding
	Select key.Binding
	Close  key.Binding
	Fit    key.Binding
	Legend key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Quit, k.Pan, k.Zoom, k.Next, k.Select, k.Close, k.Fit, k.Legend, k.Save}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Search}}
}

var defaultExploreKeys = exploreKeys{
	Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "search/diagram")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Pan:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "pan")),
	Zoom:   key.NewBinding(key.WithKeys("+", "=", "-"), key.WithHelp("+/-", "zoom")),
	Next:   key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "next/prev")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "details")),
	Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Fit:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
	Legend: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "legend")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save svg")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// controller is what the model needs from a view.Controller.
type controller interface {
	State() view.State
	Type(text string)
	Select(id string)
	Deselect()
}

// exploreModel is the bubbletea model for the explorer. It owns the
// terminal camera; search state lives in the controller.
type exploreModel struct {
	ctrl controller
	vp   *teaViewport
	opts pipeline.Options
	out  string

	state view.State
	cam   view.Camera
	// shownGen is the generation whose graph is on screen; camGen the
	// generation whose camera move has been applied.
	shownGen uint64
	camGen   uint64
	needFit  bool

	input  textinput.Model
	focus  focusArea
	keys   exploreKeys
	help   help.Model
	legend bool

	width, height int
	cursor        int
	status        string

	dragging       bool
	dragged        bool
	dragX, dragY   int
	pressX, pressY int
}

func newExploreModel(ctrl controller, vp *teaViewport, eo exploreOpts) exploreModel {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "name"
	ti.CharLimit = derrors.MaxTermLength
	ti.Focus()

	return exploreModel{
		ctrl:    ctrl,
		vp:      vp,
		out:     eo.output,
		state:   ctrl.State(),
		cam:     view.Camera{Zoom: 1},
		needFit: true,
		input:   ti,
		keys:    defaultExploreKeys,
		help:    help.New(),
		legend:  eo.legend,
		cursor:  -1,
	}
}

// session captures what is on screen for the next --resume.
func (m exploreModel) session(data string) *session.Session {
	sess := session.New(session.DefaultID, m.input.Value(), session.DefaultTTL)
	sess.Legend = m.legend
	cam := m.cam
	sess.Camera = &cam
	sess.Data = data
	return sess
}

// restore applies a saved session. The camera is only kept for an empty
// query; a search moves the camera itself.
func (m *exploreModel) restore(sess *session.Session) {
	m.legend = sess.Legend
	if sess.Query == "" && sess.Camera != nil {
		m.cam = *sess.Camera
		m.needFit = false
	}
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		m.layout()
		if m.needFit {
			m.fit()
			m.needFit = false
		}
		return m, nil

	case refreshMsg:
		m.applyState(m.ctrl.State())
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Close):
		if m.state.Selected != nil {
			m.ctrl.Deselect()
		} else if m.focus == focusSearch {
			m.toggleFocus()
		}
		return m, nil
	}

	if m.focus == focusSearch {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.toggleFocus()
	case key.Matches(msg, m.keys.Pan):
		m.pan(msg.String())
	case key.Matches(msg, m.keys.Zoom):
		f := zoomStep
		if msg.String() == "-" {
			f = 1 / zoomStep
		}
		size := m.vp.Size()
		m.cam = m.cam.ZoomAt(f, size.W/2, size.H/2)
	case key.Matches(msg, m.keys.Next):
		m.step(msg.String() == "p")
	case key.Matches(msg, m.keys.Select):
		if n, ok := m.cursorNode(); ok {
			m.ctrl.Select(n.ID)
		}
	case key.Matches(msg, m.keys.Fit):
		m.fit()
	case key.Matches(msg, m.keys.Legend):
		m.legend = !m.legend
		m.layout()
	case key.Matches(msg, m.keys.Save):
		m.status = "saving…"
		return m, m.save()
	}
	return m, nil
}

// updateInput forwards msg to the search box and reports edits.
func (m exploreModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.ctrl.Type(v)
	}
	return m, cmd
}

func (m *exploreModel) toggleFocus() {
	if m.focus == focusSearch {
		m.focus = focusDiagram
		m.input.Blur()
		return
	}
	m.focus = focusSearch
	m.input.Focus()
}

func (m *exploreModel) pan(dir string) {
	dx, dy := 0.0, 0.0
	switch dir {
	case "up":
		dy = 3 * cellH
	case "down":
		dy = -3 * cellH
	case "left":
		dx = 8 * cellW
	case "right":
		dx = -8 * cellW
	}
	m.cam = m.cam.Pan(dx, dy)
}

// step moves the keyboard cursor through the graph's nodes and centres
// the camera on the new one at the current zoom.
func (m *exploreModel) step(back bool) {
	nodes := m.state.Graph.Nodes
	if len(nodes) == 0 {
		return
	}
	switch {
	case m.cursor < 0:
		m.cursor = 0
	case back:
		m.cursor = (m.cursor - 1 + len(nodes)) % len(nodes)
	default:
		m.cursor = (m.cursor + 1) % len(nodes)
	}
	if b, ok := m.state.Graph.NodeBounds(nodes[m.cursor].ID); ok {
		m.cam = view.CenterOn(b, m.vp.Size(), m.cam.Zoom)
	}
}

func (m exploreModel) cursorNode() (graph.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Graph.Nodes) {
		return graph.Node{}, false
	}
	return m.state.Graph.Nodes[m.cursor], true
}

func (m *exploreModel) fit() {
	m.cam = view.FitBounds(m.state.Graph.Bounds(), m.vp.Size(), view.DefaultFitPadding)
}

// applyState takes a new controller snapshot. A newly settled graph is fitted
// to the screen; the controller's camera move for a match follows later and
// is applied once per generation.
func (m *exploreModel) applyState(s view.State) {
	popupBefore := m.state.Selected != nil
	m.state = s
	if s.Phase != view.Searching && s.Generation != m.shownGen {
		m.shownGen = s.Generation
		m.cursor = -1
		m.fit()
	}
	if s.Camera != nil && s.Generation != m.camGen {
		m.camGen = s.Generation
		m.cam = *s.Camera
	}
	if popupBefore != (s.Selected != nil) {
		m.layout()
	}
}

func (m exploreModel) handleMouse(msg tea.MouseMsg) exploreModel {
	x, y := msg.X, msg.Y-diagramTop
	w, h := m.diagramSize()
	inside := x >= 0 && y >= 0 && x < w && y < h

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inside:
		m.cam = m.cam.ZoomAt(zoomStep, float64(x)*cellW, float64(y)*cellH)
	case msg.Button == tea.MouseButtonWheelDown && inside:
		m.cam = m.cam.ZoomAt(1/zoomStep, float64(x)*cellW, float64(y)*cellH)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
		m.dragging, m.dragged = true, false
		m.dragX, m.dragY = x, y
		m.pressX, m.pressY = x, y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		if x != m.dragX || y != m.dragY {
			m.cam = m.cam.Pan(float64(x-m.dragX)*cellW, float64(y-m.dragY)*cellH)
			m.dragX, m.dragY = x, y
			m.dragged = true
		}
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if !m.dragged {
			m.click(m.pressX, m.pressY)
		}
	}
	return m
}

// click selects the node under a diagram cell, or closes the popup when
// the click lands on empty space.
func (m *exploreModel) click(x, y int) {
	w, h := m.diagramSize()
	c := drawDiagram(m.state.Graph, m.cam, w, h, "", "")
	if id, ok := c.hit(x, y); ok {
		m.ctrl.Select(id)
		return
	}
	if m.state.Selected != nil {
		m.ctrl.Deselect()
	}
}

// save exports the current view as an SVG.
func (m exploreModel) save() tea.Cmd {
	st := m.state
	cam := m.cam
	st.Camera = &cam
	opts := m.opts
	opts.Legend, opts.Popups, opts.PanZoom, opts.Banner = true, true, true, true
	path := outputPaths(m.out, st.Term, []string{pipeline.FormatSVG})[pipeline.FormatSVG]
	return func() tea.Msg {
		data, err := pipeline.RenderFormat(context.Background(), st, pipeline.FormatSVG, opts)
		if err == nil {
			err = writeArtifact(path, data)
		}
		return savedMsg{path: path, err: err}
	}
}

// =============================================================================
// Layout and view
// =============================================================================

// layout recomputes the diagram area and tells the controller's viewport.
func (m *exploreModel) layout() {
	w, h := m.diagramSize()
	m.vp.setCells(w, h)
}

func (m exploreModel) diagramSize() (w, h int) {
	w = m.width
	if m.legend && m.width >= 2*legendWidth {
		w -= legendWidth
	}
	h = m.height - diagramTop - 1 // help line
	if m.state.Selected != nil {
		h -= lipgloss.Height(m.popupView())
	}
	return max(w, 0), max(h, 0)
}

var (
	bannerStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	notFoundStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	popupStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorViolet).
			Padding(0, 1)
)

func (m exploreModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.bannerView())
	b.WriteByte('\n')

	w, h := m.diagramSize()
	cursor := ""
	if n, ok := m.cursorNode(); ok {
		cursor = n.ID
	}
	selected := ""
	if m.state.Selected != nil {
		selected = m.state.Selected.ID
	}
	diagram := drawDiagram(m.state.Graph, m.cam, w, h, selected, cursor).String()
	if w < m.width {
		diagram = lipgloss.JoinHorizontal(lipgloss.Top, diagram, legendPanel(h))
	}
	b.WriteString(diagram)

	if m.state.Selected != nil {
		b.WriteByte('\n')
		b.WriteString(m.popupView())
	}
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status) + "  ")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m exploreModel) bannerView() string {
	switch m.state.Phase {
	case view.NotFound:
		return notFoundStyle.Render(view.NotFoundMessage)
	case view.Searching:
		return StyleDim.Render("searching…")
	}
	text := m.state.Banner()
	if text == "" {
		return StyleDim.Render(fmt.Sprintf("%d people", len(m.state.Graph.Nodes)))
	}
	return bannerStyle.Render(truncate(text, m.width))
}

func (m exploreModel) popupView() string {
	d := m.state.Selected
	if d == nil {
		return ""
	}
	lineage := d.Lineage
	if lineage == "" {
		lineage = StyleDim.Render("(root of the tree)")
	}
	body := categoryStyle(d.Category).Bold(true).Render(d.Name) + "\n" +
		StyleDim.Render("Lineage: ") + lineage
	return popupStyle.Width(max(m.width-2, 10)).Render(body)
}

// legendPanel draws the category legend as a table, padded to h lines.
func legendPanel(h int) string {
	rows := make([][]string, 0, len(category.All))
	for _, e := range category.Legend() {
		rows = append(rows, []string{swatch(e.Category), e.Label})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Legend").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle()
		})
	return lipgloss.NewStyle().Width(legendWidth).Height(h).MaxHeight(h).Render(t.Render())
}

func truncate(s string, w int) string {
	rs := []rune(s)
	if w <= 1 || len(rs) <= w {
		return s
	}
	return string(rs[:w-1]) + "…"
}
