package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/htmlhost"
	"github.com/vango-dev/vdom/pkg/journal"
	"github.com/vango-dev/vdom/pkg/protocol"
	"github.com/vango-dev/vdom/pkg/reconcile"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address used by Run.
	Addr string

	// Container is the tag of the element the tree renders into.
	Container string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MetricsPath is the metrics route. Empty disables the route; the
	// collectors are still registered.
	MetricsPath string

	// Namespace is the Prometheus namespace.
	Namespace string

	// Registry receives the reconciler and server collectors. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry

	// Tracer is used for reconcile spans. Nil uses the global provider.
	Tracer trace.Tracer

	// Sink stores every flushed batch. Optional.
	Sink journal.Sink

	// Logger is the server logger. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:7070",
		Container:       "body",
		ShutdownTimeout: 10 * time.Second,
		MetricsPath:     "/metrics",
		Namespace:       "vdom",
	}
}

// Server owns a live tree and the clients watching it.
type Server struct {
	config *Config
	logger *slog.Logger

	// mu serializes updates, broadcasts and client joins so every client
	// sees batches in sequence order after its snapshot.
	mu        sync.Mutex
	container host.Node
	journal   *journal.Journal
	renderer  *reconcile.Renderer
	current   *reconcile.Instance

	hub        *Hub
	registry   *prometheus.Registry
	metrics    *serverMetrics
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.Container == "" {
		config.Container = defaults.Container
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.Namespace == "" {
		config.Namespace = defaults.Namespace
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	hh := htmlhost.New()
	container := hh.NewContainer(config.Container)
	j := journal.New(hh)
	j.Bind(container)

	renderer := reconcile.New(j,
		reconcile.WithLogger(logger),
		reconcile.WithTracer(config.Tracer),
		reconcile.WithMetrics(reconcile.NewMetrics(
			reconcile.WithNamespace(config.Namespace),
			reconcile.WithRegistry(registry),
		)),
	)

	s := &Server{
		config:    config,
		logger:    logger.With("component", "server"),
		container: container,
		journal:   j,
		renderer:  renderer,
		hub:       NewHub(logger),
		registry:  registry,
	}
	s.metrics = newServerMetrics(registry, config.Namespace, s.hub.ClientCount)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Update makes tree the current tree. The first call renders it into the
// container, later calls patch the previous tree. A nil tree removes the
// current one. The flushed batch is broadcast to all clients and handed to
// the sink; it is nil when the update changed nothing.
//
// Trees that fail vdom.Validate are rejected before anything is touched.
func (s *Server) Update(ctx context.Context, tree *vdom.VNode) (*protocol.MutationBatch, reconcile.Stats, error) {
	if tree != nil {
		if err := vdom.Validate(tree); err != nil {
			return nil, reconcile.Stats{}, err
		}
	}

	s.mu.Lock()
	switch {
	case s.current == nil && tree == nil:
	case s.current == nil:
		s.current = s.renderer.RenderContext(ctx, s.container, tree)
	default:
		s.current = s.renderer.PatchContext(ctx, s.current, tree)
	}
	stats := s.renderer.LastPass()
	batch := s.journal.Flush()
	sent := 0
	if batch != nil {
		sent = s.hub.Broadcast(protocol.NewMutationsFrame(batch).Encode())
	}
	s.mu.Unlock()

	if batch == nil {
		s.logger.Debug("update produced no mutations")
		return nil, stats, nil
	}

	s.metrics.batches.Inc()
	s.metrics.mutations.Add(float64(len(batch.Mutations)))
	s.logger.Info("batch flushed",
		"seq", batch.Seq,
		"mutations", len(batch.Mutations),
		"host_ops", stats.HostOps(),
		"clients", sent,
	)

	if s.config.Sink != nil {
		if err := s.config.Sink.Write(ctx, batch); err != nil {
			s.metrics.archiveErrors.Inc()
			s.logger.Error("archive batch failed", "seq", batch.Seq, "error", err)
		}
	}
	return batch, stats, nil
}

// Snapshot renders the current tree as HTML.
func (s *Server) Snapshot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return htmlhost.InnerHTML(s.container)
}

// ContainerID is the node ID of the container. Clients bind their own
// container to it before applying the first frame.
func (s *Server) ContainerID() protocol.NodeID {
	return s.journal.ID(s.container)
}

// Seq returns the sequence number of the last flushed batch.
func (s *Server) Seq() uint64 {
	return s.journal.Seq()
}

// join sends a bootstrap frame built from the current tree and registers the
// client while no update can run.
func (s *Server) join(register func(first []byte) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.journal.Snapshot(s.container, s.current)
	frame := protocol.NewFrameWithFlags(protocol.FrameSnapshot, protocol.FlagSequenced, protocol.EncodeBatch(b))
	return register(frame.Encode())
}

// Run starts the HTTP server and blocks until it fails or the process
// receives SIGINT or SIGTERM.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Error channel for ListenAndServe
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// WebSocket connections are hijacked and not tracked by http.Server.
	s.hub.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
