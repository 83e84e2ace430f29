package dispatch

import "github.com/objcore/msgdispatch/internal/classrec"

// arcSelectors are the well-known selectors check_refcount_eligibility
// inspects (§4.5). Kept as a loop over this slice rather than three copied
// checks, since a future selector could join the set.
var arcSelectors = [...]string{"retain", "release", "autorelease"}

const arcCompliantMarker = "_ARCCompliantRetainRelease"

// AddMethodList inserts every method in list into class's dispatch tables,
// both the typed selector's dtable and its untyped peer's, with
// replace=true, and records the list on the class record for
// re-registration during a later EnsureInitialized pass (§4.4 step 10
// consults class.Lists). Clears the affected dtables' caches implicitly
// via Dtable.insert.
func (r *Runtime) AddMethodList(class *classrec.Class, list classrec.MethodList) {
	r.runtimeMu.Lock()
	defer r.runtimeMu.Unlock()

	class.AddMethodList(list)
	r.insertMethodList(class, list, true)
	r.publishDtableBytes()
}

func (r *Runtime) insertMethodList(class *classrec.Class, list classrec.MethodList, replace bool) {
	for _, m := range list {
		typed := r.table.Register(m.Name, m.Types)
		typed.dtable.insert(class, m.Types, m.Imp, replace, r.table.slots)

		untyped := typed.UntypedPeer()
		if untyped.dtable != typed.dtable {
			untyped.dtable.insert(class, m.Types, m.Imp, replace, r.table.slots)
		}
	}
}

// UpdateMethod overwrites class's existing binding for method.Name (with
// method.Types) in place, bumping its version, or inserts a fresh slot if
// none existed yet. Held under RuntimeLock (§4.5).
func (r *Runtime) UpdateMethod(class *classrec.Class, method classrec.Method) {
	r.runtimeMu.Lock()
	defer r.runtimeMu.Unlock()
	r.insertMethodList(class, classrec.MethodList{method}, true)
}

// RemoveClass removes class's slot from every dtable it appears in.
// Because a dtable is shared by the whole class hierarchy (one per
// selector, not per class), removing class's slot and clearing that same
// dtable's cache — which Dtable.remove already does — is sufficient to
// invalidate any ancestor- or descendant-observed stale cache entry for
// that selector (§4.5: "recursively clear caches of every ancestor's
// dtables as well" describes the same dtable being shared up the chain,
// not a distinct per-class table to walk).
func (r *Runtime) RemoveClass(class *classrec.Class) {
	r.runtimeMu.Lock()
	defer r.runtimeMu.Unlock()

	for _, list := range class.Lists {
		for _, m := range list {
			typed := r.table.Register(m.Name, m.Types)
			typed.dtable.remove(class)
			if untyped := typed.UntypedPeer(); untyped.dtable != typed.dtable {
				untyped.dtable.remove(class)
			}
		}
	}
	class.Lists = nil
}

// checkRefcountEligibility implements §4.5: a class is fast-refcount
// eligible unless one of retain/release/autorelease resolves to a class
// that doesn't also define the _ARCCompliantRetainRelease marker selector.
// "Defines" means owns directly: matching original_source/dtable.c's
// ownsMethod(slot->owner, isARC), the marker must resolve to a slot whose
// owner is the resolving class itself, not one inherited from an ancestor
// that declared the marker on the resolving class's behalf.
func (r *Runtime) checkRefcountEligibility(class *classrec.Class) {
	eligible := true
	for _, name := range arcSelectors {
		sel := r.table.Register(name, "")
		slot := sel.dtable.Lookup(class)
		if slot == nil {
			continue
		}
		marker := r.table.Register(arcCompliantMarker, "")
		if marker.dtable.lookupExact(slot.Owner) == nil {
			eligible = false
			break
		}
	}
	class.SetFastRefcountEligible(eligible)
}
