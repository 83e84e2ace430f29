package classrec

import (
	"testing"
	"unsafe"
)

func TestNewClassDefaults(t *testing.T) {
	c := NewClass("Widget", nil)
	if c.IsInitialized() {
		t.Error("fresh class must not be initialized")
	}
	if c.IsMeta() {
		t.Error("fresh class must not be a metaclass")
	}
	if !c.DtableUninstalled() {
		t.Error("fresh class must report dtable uninstalled")
	}
	if c.DtableInstalled() || c.DtableInitializing() {
		t.Error("fresh class must not report installed/initializing")
	}
}

func TestSetInitializedIdempotent(t *testing.T) {
	c := NewClass("Widget", nil)
	c.SetInitialized()
	c.SetInitialized()
	if !c.IsInitialized() {
		t.Error("SetInitialized should make IsInitialized true")
	}
}

func TestMetaFlag(t *testing.T) {
	c := NewClass("Widget", nil)
	c.SetMeta()
	if !c.IsMeta() {
		t.Error("SetMeta should make IsMeta true")
	}
}

func TestFastRefcountEligibleToggle(t *testing.T) {
	c := NewClass("Widget", nil)
	if c.FastRefcountEligible() {
		t.Error("fresh class should not be fast-refcount eligible")
	}
	c.SetFastRefcountEligible(true)
	if !c.FastRefcountEligible() {
		t.Error("expected eligible after SetFastRefcountEligible(true)")
	}
	c.SetFastRefcountEligible(false)
	if c.FastRefcountEligible() {
		t.Error("expected not eligible after SetFastRefcountEligible(false)")
	}
}

func TestDtableStateTransitions(t *testing.T) {
	c := NewClass("Widget", nil)
	c.MarkInitializing()
	if !c.DtableInitializing() {
		t.Error("expected DtableInitializing after MarkInitializing")
	}
	if c.DtableInstalled() {
		t.Error("must not report installed while only initializing")
	}

	marker := unsafe.Pointer(c)
	c.MarkInstalled(marker)
	if !c.DtableInstalled() {
		t.Error("expected DtableInstalled after MarkInstalled")
	}
	if c.DtableInitializing() {
		t.Error("must not still report initializing once installed")
	}
	if c.DtablePointer() != marker {
		t.Error("DtablePointer should return the pointer passed to MarkInstalled")
	}
}

func TestAddMethodList(t *testing.T) {
	c := NewClass("Widget", nil)
	l1 := MethodList{{Name: "foo"}}
	l2 := MethodList{{Name: "bar"}}
	c.AddMethodList(l1)
	c.AddMethodList(l2)
	if len(c.Lists) != 2 {
		t.Fatalf("len(c.Lists) = %d, want 2", len(c.Lists))
	}
	if c.Lists[0][0].Name != "foo" || c.Lists[1][0].Name != "bar" {
		t.Error("AddMethodList did not preserve insertion order")
	}
}
