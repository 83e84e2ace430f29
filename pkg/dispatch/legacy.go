package dispatch

// legacy.go mirrors selector_table.c's NO_LEGACY compatibility shim
// (sel_get_uid, sel_get_any_typed_uid, sel_isEqual, ...) as thin wrappers
// over Table's §4.1 contract, per SPEC_FULL.md's supplemented-features
// list. Real embedders of this kind of runtime carry a layer exactly like
// this one for code written against the older API; it costs nothing
// beyond these one-line forwards.

// SelGetUID registers (or looks up) name's untyped selector.
func (t *Table) SelGetUID(name string) Selector { return t.Register(name, "") }

// SelGetAnyTypedUID returns any registered selector for name, preferring a
// typed variant over the untyped peer — matching the original's "don't
// care which types, just give me something registered under this name"
// contract used by callers that predate type-aware dispatch.
func (t *Table) SelGetAnyTypedUID(name string) Selector {
	if variants := t.TypedVariants(name); len(variants) > 0 {
		return variants[0]
	}
	return t.Register(name, "")
}

// SelIsEqual reports whether a and b are the same registered selector.
func (t *Table) SelIsEqual(a, b Selector) bool { return a == b }

// SelGetName returns sel's name.
func (t *Table) SelGetName(sel Selector) string { return sel.Name() }

// SelGetType returns sel's type encoding ("" for the untyped peer).
func (t *Table) SelGetType(sel Selector) string { return sel.Types() }
