package dispatch

import (
	"context"
	"unsafe"

	"go.uber.org/zap"

	"github.com/objcore/msgdispatch/internal/classrec"
)

// EnsureInitialized drives the class-initialization protocol from §4.4:
// the user-defined initializer runs at most once per class and at most
// once per its metaclass, superclasses initialize first, concurrent
// senders block until the initializing thread's initializer returns, and
// that same thread may re-enter the class during its own initializer
// without deadlocking.
//
// Two Open Questions from spec.md §9 are resolved as the spec text
// instructs: the equivalent of `is_initialised` never waits unless the
// look-aside list actually names the class, and the deferred cleanup below
// unlinks both InitEntry-equivalent look-aside entries in one InitLock
// section.
//
// A third ambiguity not covered by an Open Question: §4.4's
// `dtable_for_class` describes waiting on "ClassObjectLock(class)" while
// the initializing thread only ever holds "ClassObjectLock(metaclass)"
// (step 6). Those are different identities, so a literal implementation
// would not actually synchronize the two threads. This implementation
// waits on the metaclass's lock consistently in both places — the lock
// the initializing thread actually holds for the relevant duration —
// which is what the Happens-before guarantee in §4.4 requires.
func (r *Runtime) EnsureInitialized(ctx context.Context, class *classrec.Class) {
	if class.IsInitialized() && class.DtableInstalled() {
		return
	}
	if isInitializingOnChain(ctx, class) {
		return
	}

	r.resolver(class)
	if class.Super != nil {
		r.EnsureInitialized(ctx, class.Super)
	}

	meta := class.Isa
	if meta == nil {
		meta = class
	}
	if isInitializingOnChain(ctx, meta) {
		return
	}

	r.runtimeMu.Lock()
	if class.IsInitialized() && class.DtableInstalled() {
		r.runtimeMu.Unlock()
		r.waitOutMetaclass(meta)
		return
	}

	r.objSync.Enter(unsafe.Pointer(meta))
	metaUnlocked := false
	unlockMeta := func() {
		if !metaUnlocked {
			metaUnlocked = true
			r.objSync.Exit(unsafe.Pointer(meta))
		}
	}

	r.initMu.Lock()
	if class.IsInitialized() && class.DtableInstalled() {
		r.initMu.Unlock()
		r.runtimeMu.Unlock()
		unlockMeta()
		return
	}

	skipMeta := meta != class && meta.IsInitialized()
	class.SetInitialized()
	if meta != class {
		meta.SetInitialized()
	}

	r.registerAllMethods(class)
	if !skipMeta && meta != class {
		r.registerAllMethods(meta)
	}

	r.runtimeMu.Unlock()

	initSel := r.initializeSelector()
	var initSlot *Slot
	if !skipMeta {
		initSlot = r.table.EnsureRegistered(initSel).dtableOrNil().Lookup(meta)
	}

	if initSlot == nil {
		r.markInstalled(class)
		if meta != class {
			r.markInstalled(meta)
		}
		r.checkRefcountEligibility(class)
		r.initMu.Unlock()
		unlockMeta()
		return
	}

	class.MarkInitializing()
	if meta != class {
		meta.MarkInitializing()
	}
	r.lookaside[class] = struct{}{}
	r.lookaside[meta] = struct{}{}
	r.initMu.Unlock()

	r.checkRefcountEligibility(class)

	r.logger.Debug("dispatch: running class initializer",
		zap.String("class", class.Name), zap.String("metaclass", meta.Name))

	defer func() {
		r.initMu.Lock()
		r.markInstalled(class)
		if meta != class {
			r.markInstalled(meta)
		}
		delete(r.lookaside, class)
		delete(r.lookaside, meta)
		r.initMu.Unlock()
		unlockMeta()
		r.logger.Debug("dispatch: class initializer finished", zap.String("class", class.Name))
	}()

	initSlot.Impl()(withInitializing(ctx, meta), class, initSel)
}

// waitOutMetaclass blocks until meta's initializer (if any is running)
// has returned, without running it itself — the happens-before rendezvous
// used once EnsureInitialized's own re-check finds the flag already set.
func (r *Runtime) waitOutMetaclass(meta *classrec.Class) {
	r.objSync.Enter(unsafe.Pointer(meta))
	r.objSync.Exit(unsafe.Pointer(meta))
}

// DtableForClass reports whether class's dtable is ready, blocking the
// caller until any in-flight initializer for it finishes if one is
// running (§4.4, `dtable_for_class`). Used by message sends from threads
// other than the one driving EnsureInitialized.
func (r *Runtime) DtableForClass(ctx context.Context, class *classrec.Class) bool {
	if class.DtableInstalled() {
		return true
	}
	r.initMu.Lock()
	_, inFlight := r.lookaside[class]
	r.initMu.Unlock()

	if !inFlight {
		return false
	}

	r.metrics.incInitWait()
	meta := class.Isa
	if meta == nil {
		meta = class
	}
	r.waitOutMetaclass(meta)
	return class.DtableInstalled()
}

// markInstalled publishes the "installed" dtable_ptr state. There is no
// single consolidated per-class dtable in this design — dispatch state
// lives in the per-selector Dtables from dtable.go — so the pointer
// published here is only ever tested for non-nil-ness via
// Class.DtableInstalled; it never gets dereferenced. class itself is a
// convenient always-valid non-nil pointer to park there.
func (r *Runtime) markInstalled(class *classrec.Class) {
	class.MarkInstalled(unsafe.Pointer(class))
}

// registerAllMethods installs every method list currently attached to
// class into its selectors' dtables (§4.4 step 10).
func (r *Runtime) registerAllMethods(class *classrec.Class) {
	for _, list := range class.Lists {
		r.insertMethodList(class, list, true)
	}
}
