package dispatch

import (
	"context"

	"github.com/objcore/msgdispatch/internal/classrec"
)

// ClassOfFunc resolves the runtime class of a receiver. Hosts supply this by
// wrapping their own object representation; msgdispatch's own tests rely on
// the default, which expects the receiver to have a Class() method.
type ClassOfFunc func(receiver any) *classrec.Class

// Lookup is the dispatch hot path (§4.3, §6 `lookup_slot`): given a
// receiver and selector, returns the slot whose Impl may be invoked with
// (ctx, receiver, sel, args...). May substitute receiver via the proxy
// hook, in which case the returned *newReceiver is non-nil and the caller
// should use it in place of receiver for the call.
func (r *Runtime) Lookup(ctx context.Context, receiver any, sel Selector) (slot *Slot, newReceiver any) {
	if receiver == nil {
		r.metrics.incLookup(resultMiss)
		return nilReceiverSlot(sel), nil
	}

	sel = r.table.EnsureRegistered(sel)
	cur := receiver

	for {
		class := r.classOf(cur)
		r.EnsureInitialized(ctx, class)

		if slot := sel.dtable.Lookup(class); slot != nil {
			if e, ok := sel.dtable.lookupCache(class); ok && e.Version == slot.Version() {
				r.metrics.incCacheHit()
			}
			sel.dtable.tryUpdateCache(class, slot)
			r.metrics.incLookup(resultHit)
			r.recordProfile(sel, slot)
			return slot, nonNilIf(cur != receiver, cur)
		}

		untyped := sel.UntypedPeer()
		if untyped.dtable != sel.dtable {
			if slot := untyped.dtable.Lookup(class); slot != nil {
				mismatched := r.typeMismatchHook(class, sel, slot)
				r.metrics.incLookup(resultMiss)
				r.recordProfile(sel, mismatched)
				return mismatched, nonNilIf(cur != receiver, cur)
			}
		}

		if replacement, ok := r.proxyHook(cur, sel); ok {
			r.metrics.incLookup(resultProxy)
			cur = replacement
			continue
		}

		slot = r.forwardHook(cur, sel)
		r.metrics.incLookup(resultForward)
		r.recordProfile(sel, slot)
		return slot, nonNilIf(cur != receiver, cur)
	}
}

func nonNilIf(cond bool, v any) any {
	if cond {
		return v
	}
	return nil
}

func (r *Runtime) recordProfile(sel Selector, slot *Slot) {
	if slot == nil {
		return
	}
	r.profileSink.RecordLookup(sel.Name(), sel.Types(), slot)
}

// LookupSuper is the super-send variant (§4.3): starts the chain walk at
// startClass rather than deriving it from the receiver, and has no
// proxy/forward fallback — a miss simply returns nil.
func (r *Runtime) LookupSuper(ctx context.Context, startClass *classrec.Class, sel Selector) *Slot {
	sel = r.table.EnsureRegistered(sel)
	r.EnsureInitialized(ctx, startClass)

	if slot := sel.dtable.Lookup(startClass); slot != nil {
		return slot
	}
	if untyped := sel.UntypedPeer(); untyped.dtable != sel.dtable {
		return untyped.dtable.Lookup(startClass)
	}
	return nil
}

// GetSlot is the introspection variant (§4.3): same chain walk as Lookup
// but omits init-driving, proxy, and forward.
func (r *Runtime) GetSlot(class *classrec.Class, sel Selector) *Slot {
	sel = r.table.EnsureRegistered(sel)
	if slot := sel.dtable.Lookup(class); slot != nil {
		return slot
	}
	if untyped := sel.UntypedPeer(); untyped.dtable != sel.dtable {
		return untyped.dtable.Lookup(class)
	}
	return nil
}

// ClassRespondsTo reports whether class (or an ancestor) implements sel.
func (r *Runtime) ClassRespondsTo(class *classrec.Class, sel Selector) bool {
	return r.GetSlot(class, sel) != nil
}

// ImplementationFor returns class's implementation of sel, falling
// through to the forward hook's implementation when absent (§6).
func (r *Runtime) ImplementationFor(class *classrec.Class, sel Selector) classrec.Imp {
	if slot := r.GetSlot(class, sel); slot != nil {
		return slot.Impl()
	}
	return r.forwardHook(nil, sel).Impl()
}
