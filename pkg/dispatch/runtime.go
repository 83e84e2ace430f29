// Package dispatch implements a Smalltalk/Objective-C-style message
// dispatch core: selector interning, per-selector dispatch tables with an
// advisory lookup cache, a hot-path dispatch engine with proxy/forward/
// type-mismatch hooks, and a three-lock class-initialization coordinator.
//
// © 2025 msgdispatch authors. MIT License.
package dispatch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/objcore/msgdispatch/internal/classrec"
)

// Runtime ties together every component from §2: the selector table, the
// dispatch engine's hot path, the class-init coordinator, and method
// administration. It is the module's single public entry point, following
// the teacher's pkg/cache.go convention of one cohesive exported type
// rather than a component per package.
type Runtime struct {
	table   *Table
	objSync *classrec.ObjectSync

	runtimeMu sync.Mutex // RuntimeLock
	initMu    sync.Mutex // InitLock

	// lookaside is the init coordinator's look-aside list (§4.4, §9's
	// "Look-aside list" design note), rendered as a set keyed by class
	// identity rather than a singly linked InitEntry chain — the note
	// explicitly sanctions an equivalent data layout ("a per-class
	// init-in-flight pointer plus a condition variable — same
	// invariants, different data layout"); a map under InitLock gives
	// the same O(1)-ish membership test with less unsafe bookkeeping.
	lookaside map[*classrec.Class]struct{}

	logger  *zap.Logger
	metrics metricsSink

	proxyHook        ProxyHook
	forwardHook      ForwardHook
	typeMismatchHook TypeMismatchHook
	resolver         func(*classrec.Class)
	profileSink      ProfileSink
	classOf          ClassOfFunc

	initializeSelOnce sync.Once
	initializeSel     Selector
}

// NewRuntime constructs a Runtime. The default configuration uses a no-op
// logger, a no-op metrics sink, name-only selector hashing, and
// pass-through hooks.
func NewRuntime(opts ...Option) *Runtime {
	c := applyOptions(opts)
	if c.typeMismatchHook == nil {
		c.typeMismatchHook = newTypeMismatchHook(c.logger)
	}

	r := &Runtime{
		table:            NewTable(c.typeDependentDispatch, c.dtableChunkSize, c.slotChunkSize),
		objSync:          classrec.NewObjectSync(),
		lookaside:        make(map[*classrec.Class]struct{}),
		logger:           c.logger,
		metrics:          newMetricsSink(c.reg),
		proxyHook:        c.proxyHook,
		forwardHook:      c.forwardHook,
		typeMismatchHook: c.typeMismatchHook,
		resolver:         c.resolver,
		profileSink:      c.profileSink,
		classOf:          c.classOf,
	}
	return r
}

// Table exposes the runtime's selector table directly for callers that
// only need interning (e.g. a loader registering selectors ahead of any
// class existing yet).
func (r *Runtime) Table() *Table { return r.table }

func (r *Runtime) initializeSelector() Selector {
	r.initializeSelOnce.Do(func() {
		r.initializeSel = r.table.Register("initialize", "")
	})
	return r.initializeSel
}
