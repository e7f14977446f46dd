package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/tree"
	"github.com/matzehuels/descendants/pkg/view"
)

// fakeController serves a fixed state and records what the model posts.
type fakeController struct {
	st        view.State
	typed     []string
	selected  []string
	deselects int
}

func (f *fakeController) State() view.State { return f.st }
func (f *fakeController) Type(text string)  { f.typed = append(f.typed, text) }
func (f *fakeController) Select(id string)  { f.selected = append(f.selected, id) }
func (f *fakeController) Deselect()         { f.deselects++ }

func smallViewModel() view.Model {
	return view.NewModel(tree.New("Adam",
		tree.New("Cain", tree.New("Enoch")),
		tree.New("Seth", tree.New("Enosh")),
	))
}

func newTestExplore(t *testing.T, st view.State) (exploreModel, *fakeController) {
	t.Helper()
	fc := &fakeController{st: st}
	m := newExploreModel(fc, newTeaViewport(), exploreOpts{legend: true})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}), fc
}

func update(t *testing.T, m exploreModel, msg tea.Msg) exploreModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(exploreModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreSearchLimitMatchesValidation(t *testing.T) {
	m, _ := newTestExplore(t, smallViewModel().Initial())
	if m.input.CharLimit != derrors.MaxTermLength {
		t.Fatalf("CharLimit = %d, want %d", m.input.CharLimit, derrors.MaxTermLength)
	}
	full := strings.Repeat("ש", m.input.CharLimit)
	if err := derrors.ValidateSearchTerm(full); err != nil {
		t.Errorf("a full search field is rejected: %v", err)
	}
}

func TestExploreInitialView(t *testing.T) {
	m, _ := newTestExplore(t, smallViewModel().Initial())

	out := m.View()
	for _, want := range []string{"Search:", "5 people", "Legend", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
	if size := m.vp.Size(); size.W != float64(100-legendWidth)*cellW || size.H != float64(30-diagramTop-1)*cellH {
		t.Errorf("viewport size = %+v", size)
	}
}

func TestExploreTypingPostsQuery(t *testing.T) {
	m, fc := newTestExplore(t, smallViewModel().Initial())
	m = update(t, m, runes("s"))
	m = update(t, m, runes("e"))
	_ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	want := []string{"s", "se", "s"}
	if strings.Join(fc.typed, "|") != strings.Join(want, "|") {
		t.Errorf("typed = %q, want %q", fc.typed, want)
	}
}

func TestExploreFocusKeys(t *testing.T) {
	m, fc := newTestExplore(t, smallViewModel().Initial())

	// In the search box, q is text.
	m = update(t, m, runes("q"))
	if len(fc.typed) != 1 {
		t.Fatalf("typed = %q", fc.typed)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusDiagram {
		t.Fatalf("focus = %v after tab", m.focus)
	}
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q in the diagram returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q in the diagram did not quit")
	}

	m = update(t, m, runes("/"))
	if m.focus != focusSearch {
		t.Errorf("focus = %v after /", m.focus)
	}
}

func TestExploreRefreshFitsAndAppliesCameraOnce(t *testing.T) {
	vm := smallViewModel()
	m, fc := newTestExplore(t, vm.Initial())

	st := vm.Search("seth")
	fc.st = st
	m = update(t, m, refreshMsg{})
	want := view.FitBounds(st.Graph.Bounds(), m.vp.Size(), view.DefaultFitPadding)
	if m.cam != want {
		t.Errorf("camera after search = %v, want fitted %v", m.cam, want)
	}

	focus := view.Camera{X: 10, Y: 20, Zoom: 1}
	fc.st = vm.Apply(st, view.CameraSettled{Generation: st.Generation, Camera: focus})
	m = update(t, m, refreshMsg{})
	if m.cam != focus {
		t.Fatalf("camera = %v, want %v", m.cam, focus)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	panned := m.cam
	m = update(t, m, refreshMsg{})
	if m.cam != panned {
		t.Errorf("refresh reapplied the camera: %v, want %v", m.cam, panned)
	}
}

func TestExploreNotFoundBanner(t *testing.T) {
	vm := smallViewModel()
	m, fc := newTestExplore(t, vm.Initial())
	fc.st = vm.Search("moses")
	m = update(t, m, refreshMsg{})
	if !strings.Contains(m.View(), view.NotFoundMessage) {
		t.Errorf("View() missing %q", view.NotFoundMessage)
	}
}

func TestExploreClickSelects(t *testing.T) {
	vm := smallViewModel()
	m, fc := newTestExplore(t, vm.Initial())
	m.cam = view.Camera{Zoom: 1}

	cain, ok := findNode(m, "Cain")
	if !ok {
		t.Fatal("Cain not in graph")
	}
	x, y := cellOf(cain, m.cam)
	m = update(t, m, tea.MouseMsg{X: x + 1, Y: y + diagramTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: x + 1, Y: y + diagramTop, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if len(fc.selected) != 1 || fc.selected[0] != cain.ID {
		t.Errorf("selected = %q, want [%s]", fc.selected, cain.ID)
	}
}

func TestExploreDragPans(t *testing.T) {
	m, fc := newTestExplore(t, smallViewModel().Initial())
	m.cam = view.Camera{Zoom: 1}

	m = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 43, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 43, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	want := view.Camera{X: 3 * cellW, Y: 2 * cellH, Zoom: 1}
	if m.cam != want {
		t.Errorf("camera = %v, want %v", m.cam, want)
	}
	if len(fc.selected) != 0 || fc.deselects != 0 {
		t.Errorf("drag selected %q, deselected %d times", fc.selected, fc.deselects)
	}
}

func TestExploreWheelZoomsAtPointer(t *testing.T) {
	m, _ := newTestExplore(t, smallViewModel().Initial())
	m.cam = view.Camera{Zoom: 1}

	m = update(t, m, tea.MouseMsg{X: 20, Y: 5 + diagramTop, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.cam.Zoom != zoomStep {
		t.Errorf("zoom = %v, want %v", m.cam.Zoom, zoomStep)
	}
	// The diagram point under the pointer stays put.
	if x, y := m.cam.ToDiagram(20*cellW, 5*cellH); x != 200 || y != 100 {
		t.Errorf("anchor moved to (%v, %v)", x, y)
	}
}

func TestExplorePopup(t *testing.T) {
	vm := smallViewModel()
	st := vm.Initial()
	enoch, _ := st.Graph.Node(st.Graph.Nodes[3].ID)
	st = vm.Apply(st, view.NodeSelected{ID: enoch.ID})

	m, fc := newTestExplore(t, st)
	out := m.View()
	if !strings.Contains(out, "Lineage:") || !strings.Contains(out, enoch.Lineage) {
		t.Errorf("popup missing lineage %q:\n%s", enoch.Lineage, out)
	}
	withPopup := m.vp.Size().H

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if fc.deselects != 1 {
		t.Errorf("deselects = %d, want 1", fc.deselects)
	}
	fc.st = vm.Apply(st, view.NodeDeselected{})
	m = update(t, m, refreshMsg{})
	if m.vp.Size().H <= withPopup {
		t.Errorf("diagram did not grow after the popup closed: %v <= %v", m.vp.Size().H, withPopup)
	}
}

func TestExploreCursorSteps(t *testing.T) {
	m, fc := newTestExplore(t, smallViewModel().Initial())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = update(t, m, runes("n"))
	m = update(t, m, runes("n"))
	m = update(t, m, runes("p"))
	m = update(t, m, runes("p"))
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4 after wrapping back", m.cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(fc.selected) != 1 || fc.selected[0] != m.state.Graph.Nodes[4].ID {
		t.Errorf("selected = %q", fc.selected)
	}
}

func TestTeaViewportCoalescesWakes(t *testing.T) {
	vp := newTeaViewport()
	vp.wake()
	vp.wake()
	vp.MoveTo(view.Camera{Zoom: 1})

	got := make(chan tea.Msg, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go vp.pump(ctx, func(msg tea.Msg) { got <- msg })

	select {
	case msg := <-got:
		if _, ok := msg.(refreshMsg); !ok {
			t.Fatalf("msg = %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("no refresh")
	}
	select {
	case <-got:
		t.Error("wakes were not coalesced")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTeaViewportSize(t *testing.T) {
	vp := newTeaViewport()
	vp.setCells(30, 10)
	if got := vp.Size(); got != (view.Size{W: 300, H: 200}) {
		t.Errorf("Size() = %+v", got)
	}
}

func findNode(m exploreModel, label string) (graph.Node, bool) {
	for _, n := range m.state.Graph.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return graph.Node{}, false
}

func TestExploreSessionRoundTrip(t *testing.T) {
	m, _ := newTestExplore(t, smallViewModel().Initial())
	m.input.SetValue("seth")
	m.legend = false
	m.cam = view.Camera{X: 5, Y: 6, Zoom: 0.75}

	sess := m.session("tree.yaml")
	if sess.Query != "seth" || sess.Legend || sess.Data != "tree.yaml" || *sess.Camera != m.cam {
		t.Errorf("session = %+v", sess)
	}

	fresh, _ := newTestExplore(t, smallViewModel().Initial())
	fresh.restore(sess)
	if fresh.legend {
		t.Error("legend not restored")
	}
	if fresh.cam == m.cam {
		t.Error("camera restored for a non-empty query")
	}

	sess.Query = ""
	fresh.restore(sess)
	if fresh.cam != m.cam {
		t.Errorf("camera = %v, want %v", fresh.cam, m.cam)
	}
}
