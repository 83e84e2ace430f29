package dispatch

import (
	"context"

	"github.com/objcore/msgdispatch/internal/classrec"
	"github.com/objcore/msgdispatch/internal/typeenc"
)

// Four pre-built slots returned by a send to a nil receiver (§4.3 step 1),
// chosen by the selector's return-type encoding. None of these carry an
// Owner — they are not part of any dtable's slot array, only ever handed
// back directly from Lookup.
var (
	nilSlotLongDouble = newConstSlot(func(context.Context, any, any, ...any) any { return float64(0) })
	nilSlotDouble     = newConstSlot(func(context.Context, any, any, ...any) any { return float64(0) })
	nilSlotFloat      = newConstSlot(func(context.Context, any, any, ...any) any { return float32(0) })
	nilSlotInteger    = newConstSlot(func(context.Context, any, any, ...any) any { return int64(0) })
)

func newConstSlot(imp classrec.Imp) *Slot {
	s := &Slot{}
	s.setImpl("", imp)
	return s
}

// nilReceiverSlot implements §4.3 step 1: pick the zero-shaped slot
// matching sel's return-type encoding, skipping the same qualifier
// characters selector interning does.
func nilReceiverSlot(sel Selector) *Slot {
	c, ok := typeenc.FirstRelevantChar(sel.Types())
	if !ok {
		return nilSlotInteger
	}
	switch c {
	case 'D':
		return nilSlotLongDouble
	case 'd':
		return nilSlotDouble
	case 'f':
		return nilSlotFloat
	default:
		return nilSlotInteger
	}
}

// newForwardingSlot builds the default forward-hook result: a slot whose
// impl returns a selector-appropriate zero value, same shape as the
// nil-receiver slots (§7: "Default forward hook returns a slot whose impl
// returns zero").
func newForwardingSlot(sel Selector) *Slot {
	return nilReceiverSlot(sel)
}
