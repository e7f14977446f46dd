package view

// Event advances a [State] through [Model.Apply].
type Event interface {
	event()
}

// QueryChanged records a keystroke in the search field.
type QueryChanged struct {
	Text string
}

// SearchSettled applies a debounced query. It is ignored unless Generation
// matches the state's current generation.
type SearchSettled struct {
	Text       string
	Generation uint64
}

// NodeSelected opens the details popup for a node id in the current graph.
type NodeSelected struct {
	ID string
}

// NodeDeselected closes the details popup.
type NodeDeselected struct{}

// CameraSettled records a camera move for a search generation. It is
// ignored unless Generation is still current.
type CameraSettled struct {
	Generation uint64
	Camera     Camera
}

func (QueryChanged) event()   {}
func (SearchSettled) event()  {}
func (NodeSelected) event()   {}
func (NodeDeselected) event() {}
func (CameraSettled) event()  {}
