package dispatch

import (
	"context"
	"testing"
)

func noopImp(ctx context.Context, recv any, cmd any, args ...any) any { return nil }

func TestFastRefcountEligibleWhenNoARCMethodsDefined(t *testing.T) {
	r := newTestRuntime()
	class := NewClass("Plain", nil)
	r.AddMethodList(class, MethodList{{Name: "doStuff", Imp: noopImp}})

	r.EnsureInitialized(context.Background(), class)
	if !class.FastRefcountEligible() {
		t.Error("a class with no retain/release/autorelease overrides should stay fast-refcount eligible")
	}
}

func TestFastRefcountIneligibleWithoutComplianceMarker(t *testing.T) {
	r := newTestRuntime()
	custom := NewClass("CustomRefcounted", nil)
	r.AddMethodList(custom, MethodList{{Name: "retain", Imp: noopImp}})

	r.EnsureInitialized(context.Background(), custom)
	if custom.FastRefcountEligible() {
		t.Error("overriding retain without the compliance marker should make the class ineligible")
	}
}

func TestFastRefcountEligibleWithComplianceMarker(t *testing.T) {
	r := newTestRuntime()
	custom := NewClass("CompliantRefcounted", nil)
	r.AddMethodList(custom, MethodList{
		{Name: "retain", Imp: noopImp},
		{Name: "_ARCCompliantRetainRelease", Imp: noopImp},
	})

	r.EnsureInitialized(context.Background(), custom)
	if !custom.FastRefcountEligible() {
		t.Error("overriding retain while also declaring the compliance marker should stay eligible")
	}
}

func TestFastRefcountIneligibleWhenSubclassOverridesWithoutOwnMarker(t *testing.T) {
	r := newTestRuntime()
	base := NewClass("CompliantBase", nil)
	r.AddMethodList(base, MethodList{
		{Name: "retain", Imp: noopImp},
		{Name: "_ARCCompliantRetainRelease", Imp: noopImp},
	})

	sub := NewClass("ReoverridingSub", base)
	r.AddMethodList(sub, MethodList{{Name: "retain", Imp: noopImp}})

	r.EnsureInitialized(context.Background(), sub)
	if sub.FastRefcountEligible() {
		t.Error("a subclass that re-overrides retain must declare its own compliance marker; inheriting the ancestor's marker must not count")
	}
}

func TestUpdateMethodBumpsVersionAndClearsCache(t *testing.T) {
	r := newTestRuntime()
	class := NewClass("Versioned", nil)
	r.AddMethodList(class, MethodList{{Name: "value", Imp: func(ctx context.Context, recv any, cmd any, args ...any) any { return 1 }}})

	sel := r.Table().Register("value", "")
	obj := &testObject{class: class}
	slot, _ := r.Lookup(context.Background(), obj, sel)
	v1 := slot.Version()

	r.UpdateMethod(class, Method{Name: "value", Imp: func(ctx context.Context, recv any, cmd any, args ...any) any { return 2 }})

	slot2, _ := r.Lookup(context.Background(), obj, sel)
	if slot2 != slot {
		t.Error("UpdateMethod on an existing binding must not move the slot")
	}
	if slot2.Version() <= v1 {
		t.Error("UpdateMethod must bump the slot's version")
	}
	if got := slot2.Impl()(context.Background(), obj, sel); got != 2 {
		t.Errorf("got %v, want 2 after UpdateMethod", got)
	}
}
