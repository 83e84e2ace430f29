// Package classrec implements the external collaborators the dispatch core
// treats as opaque per the scope note in spec.md §1: the class record itself
// (the fields the core reads and writes directly — super, isa, flags, and
// the tri-state dtable-installation pointer) and a minimal method-list
// representation. The class-record loader, method-list parser and
// type-encoding parser referenced by the real spec stay external; this
// package is the reference implementation a host runtime would otherwise
// supply, kept here so the dispatch core is independently testable.
//
// © 2025 msgdispatch authors. MIT License.
package classrec

import (
	"sync/atomic"
	"unsafe"
)

// flag bits packed into Class.flags.
const (
	flagInitialized uint32 = 1 << iota
	flagFastRefcountEligible
	flagMeta
)

// dtableState tags the tri-state dtable_ptr field from the data model:
// uninstalled (zero value), initializing (kind=1), installed (kind=2,
// ptr points at the real per-class-owning-set-of-slots structure — which
// the dispatch package owns; classrec never dereferences it, it only
// carries the bytes, the same "duplicate just enough layout to avoid an
// import cycle" trick the teacher's clockpro package documents for its own
// entry/metaNode split from pkg/cache.go).
type dtableState struct {
	kind uint8
	ptr  unsafe.Pointer
}

const (
	dtableUninstalled uint8 = iota
	dtableInitializing
	dtableInstalled
)

// Class is the record the dispatch core reads and mutates directly. Real
// embedders own a richer class object; this is the minimal projection the
// core needs, matching data model §3 ("Class (as referenced by the core)").
type Class struct {
	Name  string
	Super *Class
	Isa   *Class // metaclass for an instance-side class; nil/self for a root metaclass
	Lists []MethodList

	flags atomic.Uint32
	state atomic.Pointer[dtableState]
}

// NewClass constructs an uninitialized class record with no methods.
func NewClass(name string, super *Class) *Class {
	return &Class{Name: name, Super: super}
}

// IsMeta reports whether this record represents a metaclass.
func (c *Class) IsMeta() bool { return c.flags.Load()&flagMeta != 0 }

// SetMeta marks this record as a metaclass.
func (c *Class) SetMeta() { c.flags.Add(flagMeta) }

// IsInitialized reports the "has initialization started" flag. Per data
// model §3, this is set the moment init begins, not when it ends — callers
// must also check DtableInstalled to know whether the initializer has
// actually returned.
func (c *Class) IsInitialized() bool { return c.flags.Load()&flagInitialized != 0 }

// SetInitialized sets the initialized flag. Idempotent.
func (c *Class) SetInitialized() {
	for {
		old := c.flags.Load()
		if old&flagInitialized != 0 {
			return
		}
		if c.flags.CompareAndSwap(old, old|flagInitialized) {
			return
		}
	}
}

// FastRefcountEligible reports the ARC fast-path eligibility flag (§4.5).
func (c *Class) FastRefcountEligible() bool {
	return c.flags.Load()&flagFastRefcountEligible != 0
}

// SetFastRefcountEligible sets or clears the ARC fast-path flag.
func (c *Class) SetFastRefcountEligible(v bool) {
	for {
		old := c.flags.Load()
		var next uint32
		if v {
			next = old | flagFastRefcountEligible
		} else {
			next = old &^ flagFastRefcountEligible
		}
		if old == next || c.flags.CompareAndSwap(old, next) {
			return
		}
	}
}

// DtableUninstalled reports the "uninstalled" sentinel state.
func (c *Class) DtableUninstalled() bool {
	s := c.state.Load()
	return s == nil || s.kind == dtableUninstalled
}

// DtableInitializing reports the "initializing" sentinel state.
func (c *Class) DtableInitializing() bool {
	s := c.state.Load()
	return s != nil && s.kind == dtableInitializing
}

// DtableInstalled reports whether the real dtable pointer has been
// published.
func (c *Class) DtableInstalled() bool {
	s := c.state.Load()
	return s != nil && s.kind == dtableInstalled
}

// DtablePointer returns the installed pointer, or nil if not installed.
func (c *Class) DtablePointer() unsafe.Pointer {
	s := c.state.Load()
	if s == nil || s.kind != dtableInstalled {
		return nil
	}
	return s.ptr
}

// MarkInitializing publishes the "initializing" sentinel, making
// DtableInitializing true for concurrent observers.
func (c *Class) MarkInitializing() {
	c.state.Store(&dtableState{kind: dtableInitializing})
}

// MarkInstalled publishes ptr as the real, ready-to-use dtable pointer.
func (c *Class) MarkInstalled(ptr unsafe.Pointer) {
	c.state.Store(&dtableState{kind: dtableInstalled, ptr: ptr})
}

// AddMethodList appends a method list to the class, modelling a loaded
// category or the class's primary @implementation block. Mirrors the
// original's singly-linked `methods` list (§3 data model).
func (c *Class) AddMethodList(l MethodList) {
	c.Lists = append(c.Lists, l)
}
