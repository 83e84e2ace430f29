package dispatch

import (
	"sync/atomic"
	"unsafe"

	"github.com/objcore/msgdispatch/internal/classrec"
	"github.com/objcore/msgdispatch/internal/selpool"
	"github.com/objcore/msgdispatch/internal/unsafehelpers"
)

// cacheSize is K from the data model: a fixed, small, round-robin cache of
// recent successful lookups per dtable.
const cacheSize = 4

// Slot is the stable-addressed (class, selector) binding object (§3). Its
// address never changes after insertion; callers may cache a raw *Slot and
// revalidate against Version before trusting a previously read Impl.
type Slot struct {
	Owner   *classrec.Class
	types   string // informational only; read by diagnostics/hooks, not by lookup
	version atomic.Uint64
	impl    atomic.Value // holds classrec.Imp
}

// Types returns the type encoding the owner registered this slot with.
func (s *Slot) Types() string { return s.types }

// Version returns the slot's replacement counter, bumped on every method
// replacement. Callers that cache a *Slot across a suspected update should
// compare Version before trusting a previously read Impl (§5, cache
// advisory note — the same rule applies to any external site cache, not
// just the dtable's own cache).
func (s *Slot) Version() uint64 { return s.version.Load() }

// Impl returns the slot's implementation function.
func (s *Slot) Impl() classrec.Imp {
	v := s.impl.Load()
	if v == nil {
		return nil
	}
	return v.(classrec.Imp)
}

func (s *Slot) setImpl(types string, imp classrec.Imp) {
	s.types = types
	s.impl.Store(imp)
	s.version.Add(1)
}

// CacheEntry is one round-robin entry in a dtable's advisory lookup cache.
type CacheEntry struct {
	Class   *classrec.Class
	Impl    classrec.Imp
	Version uint64
}

// typeListNode enumerates every type encoding registered for a selector
// name (§3: Dtable.types_head). The head node (dtable == the untyped peer's
// own dtable) is the canonical name anchor; each subsequent node's dtable
// is one typed variant.
type typeListNode struct {
	dtable *Dtable
	next   *typeListNode
}

// slotArray is the copy-on-write snapshot backing a dtable's sorted slots.
// Growth allocates a new, larger backing slice and atomically republishes
// it; readers holding the previous snapshot keep working against it (§4.2
// Ordering contract) since slotArray values are never mutated after
// publication — every change builds and stores a fresh one.
type slotArray struct {
	slots []*Slot // slots[:size] are valid, ascending by owner identity
	size  int
}

// Dtable is the per-selector sorted (class → slot) binding table plus its
// small advisory cache (§4.2).
type Dtable struct {
	Index uint32
	name  string
	types string   // "" for the untyped peer's own dtable
	meta  *Dtable  // untyped peer's dtable; nil if this dtable IS the untyped one
	typesHead *typeListNode // only meaningful on the untyped peer's dtable

	arr atomic.Pointer[slotArray]

	cacheLock   atomic.Bool // spinflag
	cacheCursor uint32
	cache       [cacheSize]CacheEntry
}

// initDtable sets up a pool-allocated, still-zero Dtable in place. Dtable
// embeds several sync/atomic types, which go vet's copylocks check (rightly)
// forbids copying by value, so construction always initializes an
// already-addressed *Dtable rather than building one and assigning it over.
func initDtable(d *Dtable, index uint32, name, types string, meta *Dtable) {
	d.Index = index
	d.name = name
	d.types = types
	d.meta = meta
	d.arr.Store(&slotArray{})
}

// Lookup walks class, class.Super, ... returning the first slot whose
// owner equals the walked class (§4.2 lookup contract). Lock-free on the
// read side: it only ever loads an already-published, immutable snapshot.
func (d *Dtable) Lookup(class *classrec.Class) *Slot {
	for c := class; c != nil; c = c.Super {
		if slot := d.lookupExact(c); slot != nil {
			return slot
		}
	}
	return nil
}

func (d *Dtable) lookupExact(class *classrec.Class) *Slot {
	arr := d.arr.Load()
	slots := arr.slots[:arr.size]
	target := unsafehelpers.Addr(unsafe.Pointer(class))

	lo, hi := 0, len(slots)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		owner := unsafehelpers.Addr(unsafe.Pointer(slots[mid].Owner))
		switch {
		case owner == target:
			return slots[mid]
		case owner < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return nil
}

// insert installs (class → imp) with the given type encoding, maintaining
// the sort-by-owner-identity invariant. Callers must hold RuntimeLock
// (§5: dtable mutation is serialized by the caller, matching the
// original's register_methods / dtable_insert being called only while
// LOCK_RUNTIME is held).
//
// Every structural change (insert of a new owner) publishes a fresh
// slotArray snapshot via copy-on-write rather than mutating size/slots of
// an already-published array in place — the original C mutates in place
// and tolerates the resulting race; Go's memory model does not extend the
// same courtesy, so this is the one place the port must be stricter than
// its source to stay race-free under `go test -race`, while preserving
// the "readers see a consistent array or the previous one" contract from
// §4.2.
func (d *Dtable) insert(class *classrec.Class, types string, imp classrec.Imp, replace bool, slots *selpool.Pool[Slot]) {
	arr := d.arr.Load()
	target := unsafehelpers.Addr(unsafe.Pointer(class))

	for i := 0; i < arr.size; i++ {
		if unsafehelpers.Addr(unsafe.Pointer(arr.slots[i].Owner)) == target {
			if replace {
				arr.slots[i].setImpl(types, imp)
				d.clearCache()
			}
			return
		}
	}

	pos := arr.size
	for pos > 0 && unsafehelpers.Addr(unsafe.Pointer(arr.slots[pos-1].Owner)) > target {
		pos--
	}

	slot := slots.Alloc()
	slot.Owner = class
	slot.setImpl(types, imp)

	newSize := arr.size + 1
	newCap := len(arr.slots)
	if newSize > newCap {
		newCap = int(unsafehelpers.NextPowerOfTwo(uint32(newSize)))
		if newCap < 2 {
			newCap = 2
		}
	}
	newSlots := make([]*Slot, newCap)
	copy(newSlots, arr.slots[:pos])
	newSlots[pos] = slot
	copy(newSlots[pos+1:newSize], arr.slots[pos:arr.size])

	d.arr.Store(&slotArray{slots: newSlots, size: newSize})
	d.clearCache()
}

// remove deletes class's slot, shifting the tail left (§4.2). No-op if
// class has no slot. Caller must hold RuntimeLock.
func (d *Dtable) remove(class *classrec.Class) {
	arr := d.arr.Load()
	target := unsafehelpers.Addr(unsafe.Pointer(class))

	idx := -1
	for i := 0; i < arr.size; i++ {
		if unsafehelpers.Addr(unsafe.Pointer(arr.slots[i].Owner)) == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	newSlots := make([]*Slot, len(arr.slots))
	copy(newSlots, arr.slots[:idx])
	copy(newSlots[idx:], arr.slots[idx+1:arr.size])

	d.arr.Store(&slotArray{slots: newSlots, size: arr.size - 1})
	d.clearCache()
}

// clearCache resets the advisory lookup cache under the dtable's spinflag.
func (d *Dtable) clearCache() {
	for !d.cacheLock.CompareAndSwap(false, true) {
	}
	d.cacheCursor = 0
	d.cache = [cacheSize]CacheEntry{}
	d.cacheLock.Store(false)
}

// tryUpdateCache opportunistically records a successful lookup. A failed
// trylock is silently skipped — the cache is advisory (§4.2).
func (d *Dtable) tryUpdateCache(class *classrec.Class, slot *Slot) bool {
	if !d.cacheLock.CompareAndSwap(false, true) {
		return false
	}
	d.cache[d.cacheCursor%cacheSize] = CacheEntry{Class: class, Impl: slot.Impl(), Version: slot.Version()}
	d.cacheCursor++
	d.cacheLock.Store(false)
	return true
}

// lookupCache consults the advisory cache only; callers must still verify
// against the authoritative slot (§8 invariant 9 — disabling the cache
// must yield identical results).
func (d *Dtable) lookupCache(class *classrec.Class) (CacheEntry, bool) {
	if !d.cacheLock.CompareAndSwap(false, true) {
		return CacheEntry{}, false
	}
	defer d.cacheLock.Store(false)
	for _, e := range d.cache {
		if e.Class == class {
			return e, true
		}
	}
	return CacheEntry{}, false
}
