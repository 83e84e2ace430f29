package classrec

import "context"

// Imp is the opaque function pointer a method slot carries. The dispatch
// core calls one itself only to run a class's initializer; it threads
// context.Context through so a running +initialize-style initializer can
// mark itself as "already owns this class's init" for reentrant sends
// (see pkg/dispatch's init guard) without the core needing goroutine
// identity.
type Imp func(ctx context.Context, receiver any, cmd any, args ...any) any

// Method is one selector/implementation binding as loaded from a method
// list. Types is the raw type encoding string, compared via
// internal/typeenc when the selector is interned.
type Method struct {
	Name  string
	Types string
	Imp   Imp
}

// MethodList is a batch of methods as loaded together — one per
// @implementation block or category, mirroring the original's singly
// linked `struct objc_method_list`.
type MethodList []Method
