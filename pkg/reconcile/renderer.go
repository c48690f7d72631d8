package reconcile

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Default tracer name for reconcile spans.
const defaultTracerName = "github.com/vango-dev/vdom/reconcile"

// Stats counts the host operations of one mount or patch pass.
type Stats struct {
	Mounted      int // host nodes allocated
	Inserted     int // new nodes inserted
	Moved        int // existing nodes repositioned
	Removed      int // nodes detached one at a time
	Replaced     int // subtrees replaced after a type change
	Cleared      int // child lists emptied in one operation
	TextSet      int
	PropsSet     int
	PropsRemoved int
	StyleSet     int
}

// HostOps returns the total number of host calls that mutated the tree.
func (s Stats) HostOps() int {
	return s.Mounted + s.Inserted + s.Moved + s.Removed + s.Replaced + s.Cleared +
		s.TextSet + s.PropsSet + s.PropsRemoved + s.StyleSet
}

// Renderer mounts and patches vdom trees on a host.
type Renderer struct {
	host    host.Host
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	pass Stats
	last Stats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Decisions are logged at Debug, duplicate keys
// at Warn.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records pass and host operation counts into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for pass spans. The default comes from the
// global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Renderer writing to h.
func New(h host.Host, opts ...Option) *Renderer {
	r := &Renderer{
		host:   h,
		logger: slog.Default(),
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host tree the renderer writes to.
func (r *Renderer) Host() host.Host { return r.host }

// LastPass returns the operation counts of the most recent Mount, Render or
// Patch call.
func (r *Renderer) LastPass() Stats { return r.last }

// Mount instantiates v as a detached host subtree. The caller attaches the
// returned instance's host node under a container.
func (r *Renderer) Mount(v *vdom.VNode) *Instance {
	return r.MountContext(context.Background(), v)
}

// MountContext is Mount with a context for tracing.
func (r *Renderer) MountContext(ctx context.Context, v *vdom.VNode) *Instance {
	span, finish := r.begin(ctx, "vdom.Mount", v)
	defer finish()

	inst := r.mount(v)
	span.SetAttributes(attribute.Int("vdom.mounted", r.pass.Mounted))
	return inst
}

// Render mounts v and appends it under container.
func (r *Renderer) Render(container host.Node, v *vdom.VNode) *Instance {
	return r.RenderContext(context.Background(), container, v)
}

// RenderContext is Render with a context for tracing.
func (r *Renderer) RenderContext(ctx context.Context, container host.Node, v *vdom.VNode) *Instance {
	span, finish := r.begin(ctx, "vdom.Render", v)
	defer finish()

	inst := r.mount(v)
	r.insert(container, inst.host, nil)
	span.SetAttributes(attribute.Int("vdom.mounted", r.pass.Mounted))
	return inst
}

// Patch updates the host tree from old's description to next and returns the
// instance for next. old must come from a previous Mount, Render or Patch
// on this renderer and must not be used again.
//
// A nil old mounts next detached; a nil next removes old's host node from its
// parent and returns nil.
func (r *Renderer) Patch(old *Instance, next *vdom.VNode) *Instance {
	return r.PatchContext(context.Background(), old, next)
}

// PatchContext is Patch with a context for tracing.
func (r *Renderer) PatchContext(ctx context.Context, old *Instance, next *vdom.VNode) *Instance {
	span, finish := r.begin(ctx, "vdom.Patch", next)
	defer finish()

	var inst *Instance
	switch {
	case old == nil && next == nil:
	case old == nil:
		inst = r.mount(next)
	case next == nil:
		if parent := r.host.Parent(old.host); parent != nil {
			r.remove(parent, old.host)
		}
	default:
		inst = r.patch(old, next)
	}

	span.SetAttributes(
		attribute.Int("vdom.host_ops", r.pass.HostOps()),
		attribute.Int("vdom.moved", r.pass.Moved),
		attribute.Int("vdom.mounted", r.pass.Mounted),
	)
	return inst
}

// ApplyProps reconciles the props of an already-instantiated host node from
// prev to next.
func (r *Renderer) ApplyProps(n host.Node, next, prev vdom.Props) {
	r.applyProps(n, next, prev)
}

// begin starts a pass: counters are reset and a span is opened. The returned
// function closes the span and records metrics.
func (r *Renderer) begin(ctx context.Context, name string, v *vdom.VNode) (trace.Span, func()) {
	r.pass = Stats{}
	start := time.Now()

	root := "#nil"
	if v != nil {
		root = v.Tag
		if v.IsText() {
			root = "#text"
		}
	}
	_, span := r.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("vdom.root", root)))

	return span, func() {
		r.last = r.pass
		r.metrics.observePass(name, time.Since(start))
		span.End()
	}
}
