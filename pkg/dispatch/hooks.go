package dispatch

import "go.uber.org/zap"

// ProxyHook may substitute the receiver before final resolution (§4.3 step
// 6, §6 external interface proxy_lookup). Returning ok=true restarts the
// lookup from the class-resolution step against replacement; returning
// ok=false leaves the receiver untouched.
type ProxyHook func(receiver any, sel Selector) (replacement any, ok bool)

// ForwardHook resolves a send that neither typed nor untyped lookup, nor
// proxy substitution, could satisfy (§4.3 step 7). The default returns a
// slot whose Imp returns a selector-appropriate zero value.
type ForwardHook func(receiver any, sel Selector) *Slot

// TypeMismatchHook is invoked when a typed lookup misses but its untyped
// peer hits (§4.3 step 5). The default logs and returns the slot unchanged
// so the call proceeds.
type TypeMismatchHook func(class *Class, sel Selector, slot *Slot) *Slot

func defaultProxyHook(any, Selector) (any, bool) { return nil, false }

func defaultForwardHook(receiver any, sel Selector) *Slot {
	return newForwardingSlot(sel)
}

func newTypeMismatchHook(logger *zap.Logger) TypeMismatchHook {
	return func(class *Class, sel Selector, slot *Slot) *Slot {
		logger.Warn("dispatch: type mismatch, falling back to untyped selector",
			zap.String("class", class.Name),
			zap.String("selector", sel.Name()),
			zap.String("selector_types", sel.Types()),
		)
		return slot
	}
}
