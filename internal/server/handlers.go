package server

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/descendants/pkg/category"
	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/pipeline"
	"github.com/matzehuels/descendants/pkg/render"
	"github.com/matzehuels/descendants/pkg/view"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// options returns the per-request pipeline options for query term q.
func (s *Server) options(r *http.Request) pipeline.Options {
	opts := s.base
	opts.Term = r.URL.Query().Get("q")
	opts.Refresh = false
	opts.Logger = s.logger
	return opts
}

// =============================================================================
// Page
// =============================================================================

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; background: #f8fafc; }
form { padding: 8px 12px; border-bottom: 1px solid #e2e8f0; background: #fff; }
input { font-size: 15px; padding: 4px 8px; width: 260px; }
main svg { display: block; width: 100vw; height: calc(100vh - 50px); }
</style>
</head>
<body>
<form method="get" action="/">
<input name="q" value="{{.Term}}" placeholder="Search" autofocus>
<a href="/render.svg?q={{.Term}}">svg</a>
<a href="/render.png?q={{.Term}}">png</a>
<a href="/api/graph?q={{.Term}}">json</a>
</form>
<main>{{.SVG}}</main>
</body>
</html>
`))

// handleIndex serves the interactive diagram for ?q= as an HTML page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.options(r)
	opts.Formats = []string{pipeline.FormatSVG}
	opts.Legend, opts.Popups, opts.PanZoom, opts.Banner = true, true, true, true

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = indexTmpl.Execute(w, struct {
		Title string
		Term  string
		SVG   template.HTML
	}{
		Title: pipeline.Title(res.State),
		Term:  opts.Term,
		SVG:   template.HTML(res.Artifacts[pipeline.FormatSVG]),
	})
	if err != nil {
		s.logger.Error("write page", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Artifacts
// =============================================================================

// handleRender serves /render.{format}?q= as a file.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := derrors.ValidateFormat(chi.URLParam(r, "format"), pipeline.Formats...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(r)
	if format == pipeline.FormatPDF && !opts.Graphviz && !render.Available() {
		s.writeError(w, r, derrors.New(derrors.ErrCodeUnsupported, "pdf output needs rsvg-convert on the server"))
		return
	}
	opts.Formats = []string{format}
	opts.Legend, opts.Banner = true, true
	opts.Popups = format == pipeline.FormatSVG
	opts.PanZoom = format == pipeline.FormatSVG

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if res.State.Phase == view.NotFound {
		w.Header().Set("X-Descendants-Not-Found", "true")
	}
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// API
// =============================================================================

// handleGraph serves the graph for ?q= with legend, banner and match path.
// A term that matches nobody is a 200 with an empty graph.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts := s.options(r)
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Legend, opts.Banner = true, true

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

// nodeResponse is the details popup content for one node.
type nodeResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Lineage  string            `json:"lineage"`
	Category category.Category `json:"category"`
	Color    string            `json:"color"`
	Depth    int               `json:"depth"`
	Parent   string            `json:"parent,omitempty"`
}

// handleNode serves the details of node {id} in the graph for ?q=.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := derrors.ValidateNodeID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(r)
	st, err := s.runner.Search(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	st = s.runner.Model(opts).Apply(st, view.NodeSelected{ID: id})
	if st.Selected == nil {
		s.writeError(w, r, derrors.New(derrors.ErrCodeNodeNotFound, "no node %q in the graph for %q", id, opts.Term))
		return
	}
	n, _ := st.Graph.Node(id)
	d := st.Selected
	writeJSON(w, http.StatusOK, nodeResponse{
		ID:       d.ID,
		Name:     d.Name,
		Lineage:  d.Lineage,
		Category: d.Category,
		Color:    d.Category.Color(),
		Depth:    n.Depth,
		Parent:   n.Parent,
	})
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, category.Legend())
}

// =============================================================================
// Responses
// =============================================================================

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// writeError maps err to a status and a coded JSON body. Server errors are
// logged; their cause is not sent to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := derrors.HTTPStatus(err)
	code := string(derrors.GetCode(err))
	msg := derrors.UserMessage(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
		code, msg = string(derrors.ErrCodeInternal), http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
