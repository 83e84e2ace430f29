package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/objcore/msgdispatch/internal/classrec"
)

// config collects everything an Option can tune. Modeled on the teacher's
// pkg/config.go Option[K,V]/defaultConfig/applyOptions pattern, without the
// generic type parameters: selectors and classes are concrete types here,
// not user-supplied ones.
type config struct {
	logger *zap.Logger
	reg    *prometheus.Registry // nil => no-op metrics sink

	typeDependentDispatch bool
	dtableChunkSize       int
	slotChunkSize         int

	proxyHook         ProxyHook
	forwardHook       ForwardHook
	typeMismatchHook  TypeMismatchHook
	resolver          func(*classrec.Class)
	profileSink       ProfileSink
	classOf           ClassOfFunc
}

// Option configures a Runtime at construction time.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger:           zap.NewNop(),
		dtableChunkSize:  0, // selpool default
		slotChunkSize:    0,
		proxyHook:        defaultProxyHook,
		forwardHook:      defaultForwardHook,
		typeMismatchHook: nil, // patched in NewRuntime once the logger is known
		resolver:         func(*classrec.Class) {},
		profileSink:      noopProfileSink{},
		classOf:          defaultClassOf,
	}
}

func defaultClassOf(receiver any) *classrec.Class {
	if o, ok := receiver.(interface{ Class() *classrec.Class }); ok {
		return o.Class()
	}
	return nil
}

// WithClassOf sets the class_of(object) collaborator (§6) Lookup uses to
// resolve a receiver's class. The default expects receiver to implement
// `Class() *dispatch.Class`.
func WithClassOf(f ClassOfFunc) Option {
	return func(c *config) {
		if f != nil {
			c.classOf = f
		}
	}
}

// WithLogger sets the structured logger used for the default type-mismatch
// hook and class-init diagnostics. Default is zap.NewNop() — the hot path
// never logs regardless of this setting.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection on the returned Runtime,
// following the teacher's WithMetrics(reg *prometheus.Registry) shape.
// Without this option the Runtime uses a no-op sink and the hot path pays
// nothing for metric updates.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// WithTypeDependentDispatch enables mixing type characters into the
// selector hash (§4.1), so selectors that share a name but differ in a
// hash-relevant argument/return type land in different buckets instead of
// colliding and relying purely on the chain-walk equality check.
func WithTypeDependentDispatch(enabled bool) Option {
	return func(c *config) { c.typeDependentDispatch = enabled }
}

// WithProxyHook overrides the proxy-lookup hook (§4.3 step 6).
func WithProxyHook(h ProxyHook) Option {
	return func(c *config) {
		if h != nil {
			c.proxyHook = h
		}
	}
}

// WithForwardHook overrides the forward hook (§4.3 step 7).
func WithForwardHook(h ForwardHook) Option {
	return func(c *config) {
		if h != nil {
			c.forwardHook = h
		}
	}
}

// WithTypeMismatchHook overrides the type-mismatch hook (§4.3 step 5).
func WithTypeMismatchHook(h TypeMismatchHook) Option {
	return func(c *config) {
		if h != nil {
			c.typeMismatchHook = h
		}
	}
}

// WithClassResolver sets the loader callback ensure_initialized consults to
// lazily resolve a class record before driving its initialization (§4.4
// step 2). Default is a no-op — classes are assumed already fully formed.
func WithClassResolver(f func(*classrec.Class)) Option {
	return func(c *config) {
		if f != nil {
			c.resolver = f
		}
	}
}

// WithProfileSink installs the optional profiling sink (§6): an
// append-only log of lookups the core writes to but never reads back.
func WithProfileSink(s ProfileSink) Option {
	return func(c *config) {
		if s != nil {
			c.profileSink = s
		}
	}
}

// WithPoolChunkSize overrides the chunk size of the dtable/slot arena pools.
// Mainly useful for tests that want small chunks to exercise growth.
func WithPoolChunkSize(dtables, slots int) Option {
	return func(c *config) {
		c.dtableChunkSize = dtables
		c.slotChunkSize = slots
	}
}

func applyOptions(opts []Option) *config {
	c := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c
}
