package dispatch

import "github.com/objcore/msgdispatch/internal/classrec"

// MethodDescriptor is a bare (name, types) pair used by RegisterFromArray,
// for callers that only want selectors interned ahead of any class or
// method-list existing (e.g. a compiler emitting a selector reference
// table upfront).
type MethodDescriptor struct {
	Name  string
	Types string
}

// RegisterFromClass interns every selector referenced by class's currently
// attached method lists, without installing any bindings (§6:
// register_selectors_from_class). Grounded in
// objc_register_selectors_from_class.
func (t *Table) RegisterFromClass(class *classrec.Class) []Selector {
	var out []Selector
	for _, list := range class.Lists {
		out = append(out, t.RegisterFromMethodList(list)...)
	}
	return out
}

// RegisterFromMethodList interns every selector in list (§6: …from_list).
func (t *Table) RegisterFromMethodList(list classrec.MethodList) []Selector {
	out := make([]Selector, 0, len(list))
	for _, m := range list {
		out = append(out, t.Register(m.Name, m.Types))
	}
	return out
}

// RegisterFromArray interns every descriptor in descs, stopping at the
// first zero-value entry (both Name and Types empty) rather than trusting
// len(descs) (§6: …from_array). This preserves a real semantic detail of
// the original: GCC-emitted selector arrays are always sentinel-terminated
// because the compiler sets their declared count to 0, so the original
// walks until a null name rather than trusting a caller-supplied length.
func (t *Table) RegisterFromArray(descs []MethodDescriptor) []Selector {
	out := make([]Selector, 0, len(descs))
	for _, d := range descs {
		if d.Name == "" && d.Types == "" {
			break
		}
		out = append(out, t.Register(d.Name, d.Types))
	}
	return out
}
