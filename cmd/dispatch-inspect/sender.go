package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/objcore/msgdispatch/internal/scenario"
	"github.com/objcore/msgdispatch/pkg/dispatch"
)

// runSends drives every scenario.SendDef against w, fanning each one out
// across its requested concurrency with errgroup — the teacher's own
// cache reaches for x/sync (singleflight) to dedupe concurrent loads;
// this tool reaches for the rest of that package, errgroup, to saturate
// the dispatch engine's hot path the way a real multi-goroutine sender
// population would.
func runSends(ctx context.Context, r *dispatch.Runtime, w *world, sends []scenario.SendDef) error {
	for _, sd := range sends {
		recv, ok := w.instances[sd.Receiver]
		if !ok {
			return fmt.Errorf("send references undefined class %q", sd.Receiver)
		}
		sel := r.Table().Register(sd.Selector, sd.Types)

		repeat := sd.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		concurrency := sd.Concurrency
		if concurrency <= 0 {
			concurrency = 1
		}
		if concurrency > repeat {
			concurrency = repeat
		}

		g, gctx := errgroup.WithContext(ctx)
		per := repeat / concurrency
		remainder := repeat % concurrency
		for worker := 0; worker < concurrency; worker++ {
			n := per
			if worker < remainder {
				n++
			}
			g.Go(func() error {
				for i := 0; i < n; i++ {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					slot, newRecv := r.Lookup(gctx, recv, sel)
					target := any(recv)
					if newRecv != nil {
						target = newRecv
					}
					slot.Impl()(gctx, target, sel)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("send %s>>%s: %w", sd.Receiver, sd.Selector, err)
		}
	}
	return nil
}
