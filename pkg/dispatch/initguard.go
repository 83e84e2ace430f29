package dispatch

import (
	"context"

	"github.com/objcore/msgdispatch/internal/classrec"
)

// initguard.go resolves the self-reentrancy requirement from §4.4 without
// a recursive ClassObjectLock or goroutine-identity tricks. The original
// relies on objc_sync's recursive-mutex semantics: the initializing thread
// can re-enter its own ClassObjectLock. Go's sync.Mutex is not reentrant,
// and recovering "is this the same OS thread/goroutine" outside sync
// primitives is not something idiomatic Go code does.
//
// Instead, the context.Context already threaded through every dispatch
// call carries an explicit marker of which classes' initializers are
// in flight *on this logical call chain*. EnsureInitialized consults it
// before taking any lock: if the current chain already owns a class's
// init (because it's the goroutine inside that class's +initialize,
// or a chain it called into), it returns immediately — the methods it
// needs were already registered in step 10 before the initializer began
// running, so the per-selector dtables are already queryable.
type initGuard struct {
	class  *classrec.Class
	parent *initGuard
}

type initGuardKey struct{}

func withInitializing(ctx context.Context, class *classrec.Class) context.Context {
	return context.WithValue(ctx, initGuardKey{}, &initGuard{class: class, parent: guardFrom(ctx)})
}

func guardFrom(ctx context.Context) *initGuard {
	g, _ := ctx.Value(initGuardKey{}).(*initGuard)
	return g
}

// isInitializingOnChain reports whether class's initializer is already
// running somewhere on this call chain (this goroutine, or a goroutine
// that handed off context synchronously — which is the only way a Go
// context can reach another goroutine at all).
func isInitializingOnChain(ctx context.Context, class *classrec.Class) bool {
	for g := guardFrom(ctx); g != nil; g = g.parent {
		if g.class == class {
			return true
		}
	}
	return false
}
