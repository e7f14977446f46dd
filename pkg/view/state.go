package view

import (
	"strings"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/graph"
)

// Phase is the search state of the view.
type Phase int

const (
	// Idle shows the full tree; the applied search term is empty.
	Idle Phase = iota
	// Searching means the query changed and the debounce has not fired yet.
	// The previous graph stays on screen.
	Searching
	// Found shows the subtree of the first match.
	Found
	// NotFound shows an empty diagram and the "No descendant found." banner.
	NotFound
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// NotFoundMessage is shown when a search matches nobody.
const NotFoundMessage = "No descendant found."

// State is a snapshot of the view. States are values; a State obtained from
// [Model.Apply] or an observer callback is never modified afterwards.
type State struct {
	Phase Phase
	// Query is the raw search text as typed.
	Query string
	// Term is the debounced search text the current Graph was built from.
	Term  string
	Graph graph.Graph
	// Match is set in the Found phase.
	Match *Match
	// Selected is the node whose details popup is open, if any.
	Selected   *Details
	Generation uint64
	// Camera is the last camera move applied for the current generation.
	Camera *Camera
}

// Match describes the node a search landed on.
type Match struct {
	Name string
	// NodeID is the match's id in State.Graph. The match is always the
	// graph's root.
	NodeID string
	// Path lists names from the full tree's root down to the match.
	Path []string
}

// Details is the content of the node details popup.
type Details struct {
	ID       string
	Name     string
	Lineage  string
	Category category.Category
}

// Banner returns the transient status line for the state: the match and its
// ancestor path when found, the not-found message, or the empty string.
func (s State) Banner() string {
	switch s.Phase {
	case Found:
		if s.Match == nil {
			return ""
		}
		return "Found " + s.Match.Name + ": " + strings.Join(s.Match.Path, " → ")
	case NotFound:
		return NotFoundMessage
	default:
		return ""
	}
}
