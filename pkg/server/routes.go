package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/middleware"
	"github.com/vango-dev/vdom/pkg/reconcile"
	"github.com/vango-dev/vdom/pkg/treefile"
)

// MaxTreeSize bounds the body of a render request.
const MaxTreeSize = 4 << 20

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.OpenTelemetry(middleware.WithTracer(s.config.Tracer)))
	r.Use(middleware.Prometheus(
		middleware.WithNamespace(s.config.Namespace),
		middleware.WithRegistry(s.registry),
	))

	r.Get("/ws", s.handleWebSocket)
	r.Post("/render", s.handleRender)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWebSocket(w, r, s.join)
}

// renderResponse is the body of a successful render request.
type renderResponse struct {
	Seq       uint64          `json:"seq"`
	Mutations int             `json:"mutations"`
	HostOps   int             `json:"hostOps"`
	Stats     reconcile.Stats `json:"stats"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxTreeSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "tree document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	tree, err := treefile.Parse(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	batch, stats, err := s.Update(r.Context(), tree)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := renderResponse{
		HostOps: stats.HostOps(),
		Stats:   stats,
	}
	if batch != nil {
		resp.Seq = batch.Seq
		resp.Mutations = len(batch.Mutations)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	markup, err := s.Snapshot()
	if err != nil {
		s.logger.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, markup)
}

// writeError writes a coded error as JSON. Tree syntax problems are 400,
// trees that parse but are invalid are 422.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var e *vdomerrors.Error
	if !errors.As(err, &e) {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusBadRequest
	switch e.Code {
	case "E101", "E102":
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(e)
}
