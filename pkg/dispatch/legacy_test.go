package dispatch

import "testing"

func TestSelGetUIDIsIdempotent(t *testing.T) {
	tbl := NewTable(false, 0, 0)
	a := tbl.SelGetUID("foo")
	b := tbl.SelGetUID("foo")
	if a != b {
		t.Error("SelGetUID should return the same selector on repeat calls")
	}
	if !tbl.SelIsEqual(a, b) {
		t.Error("SelIsEqual should agree with ==")
	}
}

func TestSelGetAnyTypedUIDPrefersTypedVariant(t *testing.T) {
	tbl := NewTable(false, 0, 0)
	tbl.Register("foo", "")
	typed := tbl.Register("foo", "v@:")

	got := tbl.SelGetAnyTypedUID("foo")
	if got != typed {
		t.Error("SelGetAnyTypedUID should prefer an existing typed variant over the untyped peer")
	}
}

func TestSelGetAnyTypedUIDFallsBackToUntyped(t *testing.T) {
	tbl := NewTable(false, 0, 0)
	got := tbl.SelGetAnyTypedUID("never-seen")
	if got.Types() != "" {
		t.Error("with no typed variant registered, SelGetAnyTypedUID should return the untyped peer")
	}
}

func TestSelGetNameAndType(t *testing.T) {
	tbl := NewTable(false, 0, 0)
	sel := tbl.Register("foo", "v@:")
	if tbl.SelGetName(sel) != "foo" {
		t.Error("SelGetName mismatch")
	}
	if tbl.SelGetType(sel) != "v@:" {
		t.Error("SelGetType mismatch")
	}
}
