package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/objcore/msgdispatch/pkg/dispatch"
)

// buildImp maps a scenario.MethodDef's canned Body string to an actual
// dispatch.Imp, since a JSON scenario file cannot carry a function value.
// Unrecognized bodies fall back to the empty/no-op implementation, the same
// tolerant-default approach RegisterFromArray takes toward malformed input.
func buildImp(className, methodName, body string) dispatch.Imp {
	switch body {
	case "echo":
		label := fmt.Sprintf("%s#%s", className, methodName)
		return func(ctx context.Context, receiver any, cmd any, args ...any) any { return label }
	case "counter":
		var n atomic.Int64
		return func(ctx context.Context, receiver any, cmd any, args ...any) any { return n.Add(1) }
	default:
		return func(ctx context.Context, receiver any, cmd any, args ...any) any { return nil }
	}
}
