package dispatch

import (
	"sync"

	"github.com/objcore/msgdispatch/internal/selpool"
	"github.com/objcore/msgdispatch/internal/typeenc"
)

// Selector is the value-typed handle described by the data model. It is
// either *raw* — name and optionally types, no dtable yet — or
// *registered*, in which case its identity is anchored by the pool-
// allocated Dtable it embeds: two registered Selector values compare equal
// (by ordinary Go == on this comparable struct) iff they share the same
// underlying dtable, which is exactly the "(name, types) uniquely
// determines the handle" invariant from §3.
//
// This is the idiomatic-Go rendering of the design note in spec.md §9: the
// original tags the high bit of an in-register pointer to distinguish
// unregistered (name pointer) from registered (dtable pointer); Go has no
// legal pointer tagging, so the "two-word handle discriminated by an
// explicit tag" alternative the same note suggests becomes this small
// value struct, with the dtable pointer itself serving as the tag (nil vs
// non-nil).
type Selector struct {
	dtable *Dtable
	name   string
	types  string
}

// UnregisteredSelector constructs a raw, not-yet-interned selector value.
// DispatchEngine.Lookup registers it transparently on first use (§4.3 step
// 2); callers that want the canonical handle up front should call
// Table.Register instead.
func UnregisteredSelector(name, types string) Selector {
	return Selector{name: name, types: types}
}

// Registered tests the "high bit" per §4.1.
func (s Selector) Registered() bool { return s.dtable != nil }

// Name returns the selector's name.
func (s Selector) Name() string {
	if s.dtable != nil {
		return s.dtable.name
	}
	return s.name
}

// Types returns the selector's type encoding, or "" for the untyped peer.
func (s Selector) Types() string {
	if s.dtable != nil {
		return s.dtable.types
	}
	return s.types
}

// Index returns the selector's inline id: its dtable's index once
// registered, zero otherwise.
func (s Selector) Index() uint32 {
	if s.dtable != nil {
		return s.dtable.Index
	}
	return 0
}

// UntypedPeer returns the selector for the same name with types = "".
// Idempotent: UntypedPeer of an untyped peer is itself (§8 invariant 3).
func (s Selector) UntypedPeer() Selector {
	if s.dtable == nil {
		return Selector{name: s.name}
	}
	if s.dtable.meta == nil {
		return s // this dtable already is the untyped one
	}
	return Selector{dtable: s.dtable.meta, name: s.dtable.meta.name}
}

func (s Selector) dtableOrNil() *Dtable { return s.dtable }

// Table is the process-global selector interning table (§4.1).
type Table struct {
	mu      sync.Mutex // SelectorTableLock
	buckets map[uint32][]Selector

	dtables      *selpool.Pool[Dtable]
	slots        *selpool.Pool[Slot]
	typeNodes    *selpool.Pool[typeListNode]

	nextIndex             uint32
	typeDependentDispatch bool
}

// NewTable constructs an empty selector table. dtableChunkSize sizes the
// dtable and type-list-node pools; slotChunkSize sizes the slot pool
// separately, since a dtable is allocated once per (name, types) pair
// while slots are allocated once per (class, selector) binding and the
// two pools grow at very different rates. Either <=0 selects the pool
// package's own default.
func NewTable(typeDependentDispatch bool, dtableChunkSize, slotChunkSize int) *Table {
	return &Table{
		buckets:               make(map[uint32][]Selector),
		dtables:               selpool.New[Dtable](dtableChunkSize),
		slots:                 selpool.New[Slot](slotChunkSize),
		typeNodes:             selpool.New[typeListNode](dtableChunkSize),
		typeDependentDispatch: typeDependentDispatch,
	}
}

func (t *Table) hash(name, types string) uint32 {
	if t.typeDependentDispatch {
		return typeenc.HashNameAndTypes(name, types)
	}
	return typeenc.HashName(name)
}

// find walks the bucket chain for (name, types) under the caller's lock,
// using full name equality plus typeenc.Equal on the type encodings.
func (t *Table) find(bucket uint32, name, types string) (Selector, bool) {
	for _, s := range t.buckets[bucket] {
		if s.Name() == name && typeenc.Equal(s.Types(), types) {
			return s, true
		}
	}
	return Selector{}, false
}

// Register interns (name, types) and returns the canonical handle,
// allocating the untyped peer first if this is the first time name has
// been seen (§4.1 registration flow). Idempotent: calling twice with the
// same arguments returns the same Selector value.
func (t *Table) Register(name, types string) Selector {
	t.mu.Lock()
	defer t.mu.Unlock()

	untypedBucket := t.hash(name, "")
	untyped, ok := t.find(untypedBucket, name, "")
	if !ok {
		d := t.dtables.Alloc()
		initDtable(d, t.nextIndex, name, "", nil)
		t.nextIndex++
		anchor := t.typeNodes.Alloc()
		*anchor = typeListNode{dtable: d}
		d.typesHead = anchor
		untyped = Selector{dtable: d, name: name}
		t.buckets[untypedBucket] = append(t.buckets[untypedBucket], untyped)
	}

	if types == "" {
		return untyped
	}

	typedBucket := t.hash(name, types)
	if typed, ok := t.find(typedBucket, name, types); ok {
		return typed
	}

	d := t.dtables.Alloc()
	initDtable(d, untyped.dtable.Index, name, types, untyped.dtable)
	typed := Selector{dtable: d, name: name, types: types}
	t.buckets[typedBucket] = append(t.buckets[typedBucket], typed)

	node := t.typeNodes.Alloc()
	*node = typeListNode{dtable: d, next: untyped.dtable.typesHead.next}
	untyped.dtable.typesHead.next = node

	return typed
}

// EnsureRegistered registers sel if it is raw, returning the canonical
// handle either way (§4.3 step 2).
func (t *Table) EnsureRegistered(sel Selector) Selector {
	if sel.Registered() {
		return sel
	}
	return t.Register(sel.name, sel.types)
}

// TypesForName returns every type encoding registered for name, excluding
// the untyped anchor itself (the `sel_copyTypes_np` equivalent, §5 of
// SPEC_FULL.md's supplemented-features list).
func (t *Table) TypesForName(name string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	untyped, ok := t.find(t.hash(name, ""), name, "")
	if !ok {
		return nil
	}
	var out []string
	for n := untyped.dtable.typesHead.next; n != nil; n = n.next {
		out = append(out, n.dtable.types)
	}
	return out
}

// TypedVariants returns the registered Selector for every type encoding of
// name (the `sel_copyTypedSelectors_np` equivalent).
func (t *Table) TypedVariants(name string) []Selector {
	t.mu.Lock()
	defer t.mu.Unlock()

	untyped, ok := t.find(t.hash(name, ""), name, "")
	if !ok {
		return nil
	}
	var out []Selector
	for n := untyped.dtable.typesHead.next; n != nil; n = n.next {
		out = append(out, Selector{dtable: n.dtable, name: name, types: n.dtable.types})
	}
	return out
}

// EqualIgnoringTypes reports whether two selectors share a name (the
// NO_LEGACY `sel_isEqual`-without-types shim, §5 of SPEC_FULL.md).
func (t *Table) EqualIgnoringTypes(a, b Selector) bool { return a.Name() == b.Name() }
